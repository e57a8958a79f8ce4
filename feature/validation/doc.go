// Package validation decides whether a snapshot may be reconciled into a
// target project.
//
// # Checks
//
// Four independent checks run in order:
//
//   - Project Type: source and target project types must match; a mismatch fails.
//   - Custom Fields: existing vs. to-be-created custom fields (informational).
//   - Issue Types: existing vs. to-be-created issue types (informational).
//   - Workflows: existing vs. to-be-created workflow statuses (informational).
//
// Only a failed check makes the result incompatible. A warning raises the
// severity without blocking. Detail lists are capped by reconcile.BoundedDetails.
//
// When compatible, the result carries the ConfigurationDiff for preview and
// for the apply engine. An incompatible result never carries a diff.
package validation
