// Package compare reports the differences between two unrelated projects.
//
// Unlike validation, nothing here is meant to be applied: both sides are
// exported and every field, issue type, status and board is classified as
// only-left, different, only-right or same. Reports render as markdown or as
// a terminal summary table.
package compare
