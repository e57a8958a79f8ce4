package validation

import (
	"context"
	"fmt"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"

	"golang.org/x/sync/errgroup"
)

// FetchTargetState reads the live fields, issue types, statuses and boards of
// a project concurrently.
func FetchTargetState(ctx context.Context, client tracker.Client, project *reconcile.ProjectRef) (reconcile.TargetState, error) {
	var (
		state    reconcile.TargetState
		statuses []tracker.IssueTypeStatuses
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		state.Fields, err = client.GetProjectFields(gctx, project.ID)
		return err
	})
	g.Go(func() (err error) {
		state.IssueTypes, err = client.GetIssueTypesForProject(gctx, project.ID)
		return err
	})
	g.Go(func() (err error) {
		statuses, err = client.GetProjectStatuses(gctx, project.Key)
		return err
	})
	g.Go(func() (err error) {
		state.Boards, err = client.GetBoardsForProject(gctx, project.Key)
		return err
	})
	if err := g.Wait(); err != nil {
		return reconcile.TargetState{}, fmt.Errorf("fetch target project %s: %w", project.Key, err)
	}

	state.Statuses = flattenStatuses(statuses)
	return state, nil
}

// flattenStatuses returns the project's statuses deduplicated by id.
func flattenStatuses(listing []tracker.IssueTypeStatuses) []reconcile.StatusDefinition {
	workflows := make([]reconcile.WorkflowDefinition, 0, len(listing))
	for _, entry := range listing {
		workflows = append(workflows, reconcile.WorkflowDefinition{Statuses: entry.Statuses})
	}
	return reconcile.UnionStatuses(workflows)
}
