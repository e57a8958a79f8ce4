package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// fetchLimit bounds the per-field and per-board follow-up reads in flight.
const fetchLimit = 5

// optionTypes are the custom field types that carry an option list.
var optionTypes = []string{"select", "multiselect", "radiobuttons", "multicheckboxes", "cascadingselect"}

// Service builds configuration snapshots from a live project.
type Service struct {
	client   tracker.Client
	instance string
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new export service. instance names the tracker the
// snapshots are taken from and is recorded in their metadata.
func NewService(client tracker.Client, instance string, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		instance: instance,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Export snapshots the schema of projectKey. When issueTypeIDs is non-empty
// only those issue types (and their workflows) are kept.
func (s *Service) Export(ctx context.Context, projectKey string, issueTypeIDs []string) (*reconcile.ExportedConfiguration, error) {
	project, err := s.client.GetProject(ctx, projectKey)
	if err != nil {
		return nil, err
	}

	var (
		fields     []reconcile.FieldDefinition
		issueTypes []reconcile.IssueTypeDefinition
		statuses   []tracker.IssueTypeStatuses
		boards     []reconcile.BoardDefinition
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		fields, err = s.client.GetProjectFields(gctx, project.ID)
		return err
	})
	g.Go(func() (err error) {
		issueTypes, err = s.client.GetIssueTypesForProject(gctx, project.ID)
		return err
	})
	g.Go(func() (err error) {
		statuses, err = s.client.GetProjectStatuses(gctx, project.Key)
		return err
	})
	g.Go(func() (err error) {
		boards, err = s.client.GetBoardsForProject(gctx, project.Key)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch project %s: %w", project.Key, err)
	}

	custom := customFields(fields)
	if err := s.loadOptions(ctx, custom); err != nil {
		return nil, err
	}
	if err := s.loadBoards(ctx, boards); err != nil {
		return nil, err
	}

	selected := selectIssueTypes(issueTypes, issueTypeIDs)
	selectedIDs := make([]string, 0, len(selected))
	for _, t := range selected {
		selectedIDs = append(selectedIDs, t.ID)
	}

	cfg := &reconcile.ExportedConfiguration{
		Meta: reconcile.ExportMeta{
			SchemaVersion:  reconcile.SchemaVersion,
			ExportedAt:     s.now(),
			SourceProject:  *project,
			SourceInstance: s.instance,
			IssueTypeIDs:   selectedIDs,
		},
		Fields:     custom,
		IssueTypes: selected,
		Workflows:  buildWorkflows(statuses, selectedIDs),
		Boards:     boards,
	}

	s.logger.Info("Exported project configuration",
		zap.String("project", project.Key),
		zap.Int("fields", len(cfg.Fields)),
		zap.Int("issue_types", len(cfg.IssueTypes)),
		zap.Int("workflows", len(cfg.Workflows)),
		zap.Int("boards", len(cfg.Boards)),
	)
	return cfg, nil
}

// loadOptions fills contexts and the options of the first context for every
// option-bearing field.
func (s *Service) loadOptions(ctx context.Context, fields []reconcile.FieldDefinition) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i := range fields {
		if !HasOptions(fields[i]) {
			continue
		}
		f := &fields[i]
		g.Go(func() error {
			contexts, err := s.client.GetFieldContexts(gctx, f.ID)
			if err != nil {
				if tracker.IsNotFound(err) {
					s.logger.Warn("Field has no readable contexts", zap.String("field", f.ID), zap.Error(err))
					return nil
				}
				return err
			}
			f.Contexts = contexts
			if len(contexts) == 0 {
				return nil
			}
			options, err := s.client.GetFieldOptions(gctx, f.ID, contexts[0].ID)
			if err != nil {
				return err
			}
			f.Options = options
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetch field options: %w", err)
	}
	return nil
}

// loadBoards fills column, filter and quick filter settings of every board.
func (s *Service) loadBoards(ctx context.Context, boards []reconcile.BoardDefinition) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i := range boards {
		b := &boards[i]
		g.Go(func() error {
			cfg, err := s.client.GetBoardConfiguration(gctx, b.ID)
			if err != nil {
				return err
			}
			b.Columns = cfg.Columns
			b.ConstraintType = cfg.ConstraintType
			b.Estimation = cfg.Estimation
			b.Ranking = cfg.Ranking

			if cfg.FilterID != "" {
				filter, err := s.client.GetFilter(gctx, cfg.FilterID)
				if err != nil {
					return err
				}
				b.Filter = *filter
			}

			quick, err := s.client.GetBoardQuickFilters(gctx, b.ID)
			if err != nil && !tracker.IsNotFound(err) {
				return err
			}
			b.QuickFilters = quick
			if b.QuickFilters == nil {
				b.QuickFilters = []reconcile.QuickFilter{}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetch board configuration: %w", err)
	}
	return nil
}

// HasOptions reports whether a field type carries an option list.
func HasOptions(f reconcile.FieldDefinition) bool {
	if f.Schema.Type == "option" || f.Schema.Items == "option" || f.Schema.Type == "option-with-child" {
		return true
	}
	custom := f.Schema.Custom
	if i := strings.LastIndex(custom, ":"); i >= 0 {
		custom = custom[i+1:]
	}
	for _, t := range optionTypes {
		if custom == t {
			return true
		}
	}
	return false
}

func customFields(fields []reconcile.FieldDefinition) []reconcile.FieldDefinition {
	out := make([]reconcile.FieldDefinition, 0, len(fields))
	for _, f := range fields {
		if f.IsCustom {
			out = append(out, f)
		}
	}
	return out
}

func selectIssueTypes(all []reconcile.IssueTypeDefinition, ids []string) []reconcile.IssueTypeDefinition {
	if len(ids) == 0 {
		return all
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[strings.TrimSpace(id)] = struct{}{}
	}
	out := make([]reconcile.IssueTypeDefinition, 0, len(ids))
	for _, t := range all {
		if _, ok := wanted[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}

// buildWorkflows derives one workflow per selected issue type from the
// project status listing. The listing carries no transitions.
func buildWorkflows(listing []tracker.IssueTypeStatuses, issueTypeIDs []string) []reconcile.WorkflowDefinition {
	wanted := make(map[string]struct{}, len(issueTypeIDs))
	for _, id := range issueTypeIDs {
		wanted[id] = struct{}{}
	}

	workflows := make([]reconcile.WorkflowDefinition, 0, len(listing))
	for _, entry := range listing {
		if _, ok := wanted[entry.IssueType.ID]; !ok {
			continue
		}
		statuses := entry.Statuses
		if statuses == nil {
			statuses = []reconcile.StatusDefinition{}
		}
		workflows = append(workflows, reconcile.WorkflowDefinition{
			ID:           entry.IssueType.ID,
			Name:         entry.IssueType.Name + " workflow",
			Statuses:     statuses,
			Transitions:  []reconcile.Transition{},
			IssueTypeIDs: []string{entry.IssueType.ID},
		})
	}
	return workflows
}
