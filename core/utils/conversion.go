package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ToInt converts various types to int using explicit type switching.
// It handles the numeric shapes produced by encoding/json (float64, json.Number)
// as well as strings, since the tracker returns ids both quoted and unquoted.
func ToInt(val any) int {
	switch v := val.(type) {
	case nil:
		return 0
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			f, _ := v.Float64()
			return int(f)
		}
		return int(i)
	case string:
		i, _ := strconv.Atoi(v)
		return i
	default:
		i, _ := strconv.Atoi(fmt.Sprintf("%v", v))
		return i
	}
}

// ToString converts various types to string.
// Whole floats are rendered without a fractional part so that numeric board and
// filter ids decoded into interface values round-trip as "42" and not "42.000000".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToIntPtr is like ToInt but keeps absence: nil stays nil.
func ToIntPtr(val any) *int {
	if val == nil {
		return nil
	}
	i := ToInt(val)
	return &i
}
