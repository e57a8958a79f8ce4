package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"String", "10001", "10001"},
		{"WholeFloat", float64(42), "42"},
		{"FractionalFloat", 1.5, "1.5"},
		{"Number", json.Number("77"), "77"},
		{"Int", 9, "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 0, ToInt(nil))
	assert.Equal(t, 3, ToInt(float64(3)))
	assert.Equal(t, 12, ToInt("12"))
	assert.Equal(t, 5, ToInt(json.Number("5")))
	assert.Nil(t, ToIntPtr(nil))
	assert.Equal(t, 4, *ToIntPtr(float64(4)))
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("  Story Points ", "story points"))
	assert.False(t, SameName("Story Points", "Story Point"))
}

func TestSafeTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 500, time.UTC)
	got := SafeTimestamp(ts)
	assert.Equal(t, "2024-03-05T14-07-09Z", got)
	assert.NotContains(t, got, ":")
}
