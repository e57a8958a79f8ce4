// Package reconcile holds the configuration model and the pure engines that
// compare tracker project schemas.
//
// A project's schema (custom fields, issue types, workflow statuses and
// boards) is captured once as an ExportedConfiguration and then compared
// against live target state. Nothing in this package talks to the tracker;
// callers fetch state and hand it in.
//
// # Identity
//
// Entities are matched in two tiers by Matcher: exact identifier first, then
// case-insensitive trimmed name. A name-only match is always reported as
// StatusModified with BeforeValue/AfterValue set to the source and target
// identifiers, since the same logical entity is frequently recreated with a
// new id in another project.
//
// # Engines
//
//   - Diff: asymmetric. Classifies source entities as new, modified or
//     unchanged relative to a TargetState. Workflows are compared by status
//     membership only.
//   - Compare: symmetric. Classifies two projects' entities, adding skipped
//     for entities present only on the right-hand side.
//
// # Apply results
//
// The apply result types live here as well so that every step derives its
// aggregate status through DeriveStepStatus.
package reconcile
