package compare

import (
	"context"
	"fmt"

	"schema-sync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Exporter snapshots a live project.
type Exporter interface {
	Export(ctx context.Context, projectKey string, issueTypeIDs []string) (*reconcile.ExportedConfiguration, error)
}

// Service compares two projects.
type Service struct {
	exporter Exporter
	logger   *zap.Logger
}

// NewService creates a new compare service.
func NewService(exporter Exporter, logger *zap.Logger) *Service {
	return &Service{exporter: exporter, logger: logger}
}

// Compare exports both projects concurrently and compares them.
func (s *Service) Compare(ctx context.Context, leftKey, rightKey string) (*reconcile.ComparisonResult, error) {
	var left, right *reconcile.ExportedConfiguration

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		left, err = s.exporter.Export(gctx, leftKey, nil)
		if err != nil {
			return fmt.Errorf("export %s: %w", leftKey, err)
		}
		return nil
	})
	g.Go(func() (err error) {
		right, err = s.exporter.Export(gctx, rightKey, nil)
		if err != nil {
			return fmt.Errorf("export %s: %w", rightKey, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.CompareConfigurations(left, right), nil
}

// CompareConfigurations compares two already exported snapshots.
func (s *Service) CompareConfigurations(left, right *reconcile.ExportedConfiguration) *reconcile.ComparisonResult {
	result := reconcile.Compare(left, right)
	summary := result.Summary()
	s.logger.Info("Compared projects",
		zap.String("left", result.Left.Key),
		zap.String("right", result.Right.Key),
		zap.Int("fields_modified", summary.Fields.Modified),
		zap.Int("issue_types_modified", summary.IssueTypes.Modified),
		zap.Int("statuses_modified", summary.Statuses.Modified),
		zap.Int("boards_modified", summary.Boards.Modified),
	)
	return result
}
