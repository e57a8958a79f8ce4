package apply

import (
	"context"
	"fmt"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"

	"go.uber.org/zap"
)

// StatusCategory maps a status category key onto the creation category.
func StatusCategory(key string) string {
	switch key {
	case reconcile.CategoryIndeterminate:
		return tracker.StatusCategoryInProgress
	case reconcile.CategoryDone:
		return tracker.StatusCategoryDone
	default:
		return tracker.StatusCategoryTodo
	}
}

// StatusesToCreate returns the union, deduplicated by id, of the statuses of
// every modified workflow.
func StatusesToCreate(diff *reconcile.ConfigurationDiff) []reconcile.StatusDefinition {
	workflows := make([]reconcile.WorkflowDefinition, 0, len(diff.Workflows.Modified))
	for _, it := range diff.Workflows.Modified {
		workflows = append(workflows, it.Item)
	}
	return reconcile.UnionStatuses(workflows)
}

// applyStatuses creates the statuses in one all-or-nothing batch.
func (e *Engine) applyStatuses(ctx context.Context, r *run) []reconcile.ApplyItemResult {
	statuses := StatusesToCreate(r.diff)
	if len(statuses) == 0 {
		return nil
	}

	inputs := make([]tracker.StatusInput, 0, len(statuses))
	for _, s := range statuses {
		inputs = append(inputs, tracker.StatusInput{Name: s.Name, StatusCategory: StatusCategory(s.Category.Key)})
	}

	created, err := e.client.CreateStatuses(ctx, r.target.ID, inputs)
	if err != nil {
		if tracker.IsConflict(err) {
			r.logger.Warn("Status batch rejected as duplicate", zap.Int("count", len(inputs)), zap.Error(err))
			results := make([]reconcile.ApplyItemResult, 0, len(inputs))
			for _, in := range inputs {
				results = append(results, skipped(in.Name, "Status already exists"))
			}
			return results
		}
		r.logger.Error("Failed to create statuses", zap.Int("count", len(inputs)), zap.Error(err))
		return []reconcile.ApplyItemResult{failed(fmt.Sprintf("%d statuses", len(inputs)), "Failed to create statuses", err)}
	}

	results := make([]reconcile.ApplyItemResult, 0, len(inputs))
	if len(created) == 0 {
		for _, in := range inputs {
			results = append(results, success(in.Name, "Created status"))
		}
		return results
	}
	for _, s := range created {
		results = append(results, success(s.Name, "Created status"))
	}
	return results
}
