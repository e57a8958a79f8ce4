package apply

import (
	"context"
	"errors"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"
	"schema-sync/feature/validation"

	"go.uber.org/zap"
)

// ErrIncompatible is returned when validation blocks an apply.
var ErrIncompatible = errors.New("configuration is not compatible with the target project")

// Service validates, applies and records apply runs.
type Service struct {
	client    tracker.Client
	engine    *Engine
	validator *validation.Service
	history   *History
	logger    *zap.Logger
}

// NewService creates an apply service. history may be nil, in which case
// runs are not recorded.
func NewService(client tracker.Client, engine *Engine, validator *validation.Service, history *History, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		engine:    engine,
		validator: validator,
		history:   history,
		logger:    logger,
	}
}

// Request describes one apply run.
type Request struct {
	Source    *reconcile.ExportedConfiguration
	TargetKey string
	// Diff is applied as-is when set; otherwise the source is validated first.
	Diff    *reconcile.ConfigurationDiff
	Options reconcile.ApplyOptions
}

// Apply runs a reconciliation. When req.Diff is nil the source is validated
// and an incompatible result is returned together with ErrIncompatible.
func (s *Service) Apply(ctx context.Context, req Request) (*reconcile.ApplyResult, *reconcile.ValidationResult, error) {
	if err := req.Source.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		target    *reconcile.ProjectRef
		validated *reconcile.ValidationResult
	)
	diff := req.Diff
	if diff == nil {
		v, err := s.validator.Validate(ctx, req.Source, req.TargetKey)
		if err != nil {
			return nil, nil, err
		}
		if !v.Compatible {
			return nil, v, ErrIncompatible
		}
		validated, diff = v, v.Diff
		t := v.TargetProject
		target = &t
	} else {
		t, err := s.client.GetProject(ctx, req.TargetKey)
		if err != nil {
			return nil, nil, err
		}
		target = t
	}

	result, err := s.engine.Apply(ctx, req.Source, target, diff, req.Options)
	if err != nil {
		return nil, validated, err
	}
	s.record(ctx, req, result)
	return result, validated, nil
}

func (s *Service) record(ctx context.Context, req Request, result *reconcile.ApplyResult) {
	if s.history == nil {
		return
	}
	run, err := s.history.Record(ctx, req.Source.Meta.SourceProject.Key, req.TargetKey, req.Options.DryRun, result)
	if err != nil {
		s.logger.Warn("Failed to record apply run", zap.Error(err))
		return
	}
	s.logger.Debug("Recorded apply run", zap.String("run", run.ID))
}

// History returns recorded runs, or nil when history is disabled.
func (s *Service) History(ctx context.Context, project string, limit int) ([]ApplyRun, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, project, limit)
}

// HistoryEnabled reports whether runs are recorded.
func (s *Service) HistoryEnabled() bool {
	return s.history != nil
}
