package apply

import (
	"context"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"

	"go.uber.org/zap"
)

func (e *Engine) applyIssueTypes(ctx context.Context, r *run) []reconcile.ApplyItemResult {
	if r.typesErr != nil {
		names := make([]string, 0, len(r.diff.IssueTypes.New))
		for _, it := range r.diff.IssueTypes.New {
			names = append(names, it.Item.Name)
		}
		return unreadable(names, "Could not read target issue types", r.typesErr)
	}

	var results []reconcile.ApplyItemResult
	for _, it := range r.diff.IssueTypes.New {
		results = append(results, e.createIssueType(ctx, r, it.Item))
	}
	return results
}

func (e *Engine) createIssueType(ctx context.Context, r *run, t reconcile.IssueTypeDefinition) reconcile.ApplyItemResult {
	if r.types.Contains(t) {
		return skipped(t.Name, "Issue type already exists in the target project")
	}

	in := tracker.IssueTypeInput{
		Name:           t.Name,
		Description:    t.Description,
		Type:           tracker.IssueTypeStandard,
		HierarchyLevel: t.HierarchyLevel,
	}
	if t.IsSubtask {
		in.Type = tracker.IssueTypeSubtask
	}
	projectScoped := r.target.TeamManaged() && r.scheme == nil
	if projectScoped {
		in.ProjectID = r.target.ID
	}

	created, err := e.client.CreateIssueType(ctx, in)
	if err != nil {
		if !tracker.IsConflict(err) {
			r.logger.Error("Failed to create issue type", zap.String("issue_type", t.Name), zap.Error(err))
			return failed(t.Name, "Failed to create issue type", err)
		}
		r.logger.Warn("Issue type already exists", zap.String("issue_type", t.Name), zap.Error(err))
		return e.recoverIssueType(ctx, r, t, in, projectScoped)
	}

	if r.scheme == nil {
		return success(t.Name, "Created issue type")
	}
	if err := e.client.AddIssueTypeToScheme(ctx, r.scheme.ID, []string{created.ID}); err != nil {
		if tracker.IsConflict(err) {
			return success(t.Name, "Created issue type; already in scheme")
		}
		r.logger.Error("Failed to add issue type to scheme", zap.String("issue_type", t.Name), zap.Error(err))
		return failed(t.Name, "Created issue type but could not add it to the scheme", err)
	}
	return success(t.Name, "Created issue type and added it to the scheme")
}

// recoverIssueType handles a create conflict: reuse the global type with the
// same name when the project has a scheme, otherwise create a project-scoped one.
func (e *Engine) recoverIssueType(ctx context.Context, r *run, t reconcile.IssueTypeDefinition, in tracker.IssueTypeInput, projectScoped bool) reconcile.ApplyItemResult {
	if r.scheme != nil {
		all, err := e.globalIssueTypes(ctx, r)
		if err != nil {
			return failed(t.Name, "Failed to look up existing issue types", err)
		}
		existing, ok := reconcile.NewMatcher(all).FindByName(t.Name)
		if !ok {
			return skipped(t.Name, "Issue type already exists")
		}
		if err := e.client.AddIssueTypeToScheme(ctx, r.scheme.ID, []string{existing.ID}); err != nil {
			if tracker.IsConflict(err) {
				return skipped(t.Name, "Issue type already in scheme")
			}
			r.logger.Error("Failed to add existing issue type to scheme", zap.String("issue_type", t.Name), zap.Error(err))
			return failed(t.Name, "Failed to add existing issue type to the scheme", err)
		}
		return success(t.Name, "Added existing issue type to the scheme")
	}

	if projectScoped {
		return skipped(t.Name, "Issue type already exists")
	}
	in.ProjectID = r.target.ID
	if _, err := e.client.CreateIssueType(ctx, in); err != nil {
		if tracker.IsConflict(err) {
			return skipped(t.Name, "Issue type already exists")
		}
		r.logger.Error("Failed to create project-scoped issue type", zap.String("issue_type", t.Name), zap.Error(err))
		return failed(t.Name, "Failed to create project-scoped issue type", err)
	}
	return success(t.Name, "Created project-scoped issue type")
}
