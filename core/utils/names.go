package utils

import (
	"strings"
	"time"
)

// NormalizeName lowercases and trims a display name for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameName reports whether two display names are equal after normalization.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// SafeTimestamp formats t so it can be used inside object keys and file names
// (no colons, no dots).
func SafeTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15-04-05Z")
}
