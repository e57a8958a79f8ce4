package apply

import (
	"fmt"

	"schema-sync/core/reconcile"
)

// dryRun maps every diff item to a skipped result describing what would
// happen. The backup written before the short-circuit is kept in the result.
func dryRun(diff *reconcile.ConfigurationDiff, backup reconcile.ApplyStepResult) *reconcile.ApplyResult {
	fields := make([]reconcile.ApplyItemResult, 0, diff.Fields.Len())
	for _, it := range diff.Fields.Items() {
		fields = append(fields, skipped(it.Item.Name, fieldIntent(it)))
	}

	types := make([]reconcile.ApplyItemResult, 0, diff.IssueTypes.Len())
	for _, it := range diff.IssueTypes.Items() {
		reason := "Would leave issue type unchanged"
		if it.Status == reconcile.StatusNew {
			reason = "Would create issue type"
		}
		types = append(types, skipped(it.Item.Name, reason))
	}

	workflows := make([]reconcile.ApplyItemResult, 0, diff.Workflows.Len())
	for _, it := range diff.Workflows.Items() {
		reason := "Would leave workflow statuses unchanged"
		if it.Status == reconcile.StatusModified {
			reason = "Would create missing statuses (" + it.Reason + ")"
		}
		workflows = append(workflows, skipped(it.Item.Name, reason))
	}

	boards := make([]reconcile.ApplyItemResult, 0, diff.Boards.Len())
	for _, it := range diff.Boards.Items() {
		reason := "Would leave board unchanged"
		if it.Status == reconcile.StatusNew {
			reason = "Would create filter and board"
		}
		boards = append(boards, skipped(it.Item.Name, reason))
	}

	return &reconcile.ApplyResult{
		Success:    true,
		BackupPath: backup.ArtifactPath,
		Results: []reconcile.ApplyStepResult{
			backup,
			reconcile.NewStepResult(StepFields, fields),
			reconcile.NewStepResult(StepIssueTypes, types),
			reconcile.NewStepResult(StepStatuses, workflows),
			reconcile.NewStepResult(StepBoards, boards),
		},
		ManualSteps: []string{ManualDryRun},
	}
}

func fieldIntent(it reconcile.DiffItem[reconcile.FieldDefinition]) string {
	switch it.Status {
	case reconcile.StatusNew:
		return "Would create field"
	case reconcile.StatusModified:
		if n := len(it.Item.ActiveOptions()); n > 0 {
			return fmt.Sprintf("Would reconcile %d options", n)
		}
		return "Would leave field unchanged (exists under id " + it.AfterValue + ")"
	default:
		return "Would leave field unchanged"
	}
}
