package apply

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"

	"go.uber.org/zap"
)

var projectClause = regexp.MustCompile(`(?i)\bproject\s*=\s*("[^"]*"|'[^']*'|[A-Za-z0-9_]+)`)

// RetargetQuery points every "project = KEY" clause of query at projectKey.
// An empty query becomes a plain project filter.
func RetargetQuery(query, projectKey string) string {
	if strings.TrimSpace(query) == "" {
		return fmt.Sprintf("project = %s ORDER BY Rank ASC", projectKey)
	}
	return projectClause.ReplaceAllLiteralString(query, "project = "+projectKey)
}

func (e *Engine) applyBoards(ctx context.Context, r *run) []reconcile.ApplyItemResult {
	var results []reconcile.ApplyItemResult
	for _, it := range r.diff.Boards.New {
		results = append(results, e.createBoard(ctx, r, it.Item))
	}
	return results
}

func (e *Engine) createBoard(ctx context.Context, r *run, b reconcile.BoardDefinition) reconcile.ApplyItemResult {
	filterName := b.Filter.Name
	if filterName == "" {
		filterName = b.Name + " filter"
	}

	filter, err := e.client.CreateFilter(ctx, tracker.FilterInput{
		Name: filterName,
		JQL:  RetargetQuery(b.Filter.Query, r.target.Key),
	})
	if err != nil {
		return e.boardFailure(r, b, "Failed to create board filter", err)
	}

	boardType := b.Type
	if boardType == "" || boardType == reconcile.BoardSimple {
		boardType = reconcile.BoardKanban
	}
	if _, err := e.client.CreateBoard(ctx, tracker.BoardInput{
		Name:       b.Name,
		Type:       boardType,
		FilterID:   filter.ID,
		ProjectKey: r.target.Key,
	}); err != nil {
		return e.boardFailure(r, b, "Failed to create board", err)
	}
	return success(b.Name, fmt.Sprintf("Created %s board with filter %s", boardType, filter.ID))
}

func (e *Engine) boardFailure(r *run, b reconcile.BoardDefinition, reason string, err error) reconcile.ApplyItemResult {
	if tracker.IsConflict(err) {
		r.logger.Warn("Board or filter already exists", zap.String("board", b.Name), zap.Error(err))
		return skipped(b.Name, "Board or filter may already exist")
	}
	r.logger.Error(reason, zap.String("board", b.Name), zap.Error(err))
	return failed(b.Name, reason, err)
}
