// Package apply reconciles a target project towards an exported configuration.
//
// # Engine
//
// Engine.Apply runs these steps in order:
//
//  0. backup: a pre-import-backup record is written before anything else.
//     Failing to write it aborts the run; a dry run reports the failed step
//     and carries on. The record is a forensic artifact for manual recovery;
//     there is no restore.
//  1. fields: new fields are created (with context and options when enabled).
//     A duplicate falls back to binding the existing field to the project.
//     Matched fields get the options they lack, compared case-insensitively.
//  2. issueTypes: new issue types are created and added to the project's
//     scheme. A duplicate reuses the global type of the same name.
//  3. statuses: the statuses of every modified workflow are created in one batch.
//  4. boards: a filter retargeted at the target project, then the board.
//
// Steps never abort each other. Conflicts (tracker.IsConflict) are absorbed as
// skipped items; anything else is an error item. Step status is derived by
// reconcile.DeriveStepStatus and the run fails only if a step holds a hard error.
//
// A dry run still writes the backup, then makes no tracker call and reports
// every diff item as skipped with the action that would be taken.
//
// The fields and issueTypes steps depend on target state read up front. When
// a read fails, only the dependent step reports its items as errors.
//
// # History
//
// When a database is configured, every run is stored as an ApplyRun row.
package apply
