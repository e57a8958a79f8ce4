// Package utils provides common utility functions for schema-sync.
// It includes helpers for converting loosely typed JSON ids, normalizing
// display names for matching, and formatting storage-safe timestamps.
package utils
