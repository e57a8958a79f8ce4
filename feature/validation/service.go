package validation

import (
	"context"
	"fmt"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"

	"go.uber.org/zap"
)

// Check names, in the order they run.
const (
	CheckProjectType  = "Project Type"
	CheckCustomFields = "Custom Fields"
	CheckIssueTypes   = "Issue Types"
	CheckWorkflows    = "Workflows"
)

// Service checks whether a snapshot can be reconciled into a target project.
type Service struct {
	client tracker.Client
	logger *zap.Logger
}

// NewService creates a new validation service.
func NewService(client tracker.Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Validate runs every compatibility check of source against targetKey. The
// diff is only produced when the result is compatible. An error is returned
// only when no result can be produced at all.
func (s *Service) Validate(ctx context.Context, source *reconcile.ExportedConfiguration, targetKey string) (*reconcile.ValidationResult, error) {
	if err := source.Validate(); err != nil {
		return nil, fmt.Errorf("invalid source configuration: %w", err)
	}

	target, err := s.client.GetProject(ctx, targetKey)
	if err != nil {
		return nil, err
	}
	state, err := FetchTargetState(ctx, s.client, target)
	if err != nil {
		return nil, err
	}

	result := Evaluate(source, target, state)
	s.logger.Info("Validated configuration",
		zap.String("source", source.Meta.SourceProject.Key),
		zap.String("target", target.Key),
		zap.Bool("compatible", result.Compatible),
		zap.String("severity", string(result.Severity)),
	)
	return result, nil
}

// Evaluate runs the checks against an already fetched target state.
func Evaluate(source *reconcile.ExportedConfiguration, target *reconcile.ProjectRef, state reconcile.TargetState) *reconcile.ValidationResult {
	checks := []reconcile.ValidationCheck{
		checkProjectType(source.Meta.SourceProject, *target),
		checkPresence(CheckCustomFields, "custom fields", source.CustomFields(), state.Fields),
		checkPresence(CheckIssueTypes, "issue types", source.IssueTypes, state.IssueTypes),
		checkPresence(CheckWorkflows, "workflow statuses", source.Statuses(), state.Statuses),
	}

	result := &reconcile.ValidationResult{
		Compatible:    true,
		Severity:      reconcile.SeverityInfo,
		Checks:        checks,
		SourceProject: source.Meta.SourceProject,
		TargetProject: *target,
	}
	for _, c := range checks {
		switch c.Status {
		case reconcile.CheckFail:
			result.Compatible = false
			result.Severity = reconcile.SeverityError
		case reconcile.CheckWarning:
			if result.Severity != reconcile.SeverityError {
				result.Severity = reconcile.SeverityWarning
			}
		}
	}

	if result.Compatible {
		result.Diff = reconcile.Diff(source, state)
	}
	return result
}

func checkProjectType(source, target reconcile.ProjectRef) reconcile.ValidationCheck {
	if source.ProjectType != target.ProjectType {
		return reconcile.ValidationCheck{
			Name:   CheckProjectType,
			Status: reconcile.CheckFail,
			Message: fmt.Sprintf("Project type mismatch: source %s is %q, target %s is %q",
				source.Key, source.ProjectType, target.Key, target.ProjectType),
		}
	}
	return reconcile.ValidationCheck{
		Name:    CheckProjectType,
		Status:  reconcile.CheckPass,
		Message: fmt.Sprintf("Both projects are %q projects", source.ProjectType),
	}
}

// checkPresence reports how many source entities already exist in the
// target. Missing entities are always creatable, so it never fails.
func checkPresence[T reconcile.Identity](name, noun string, source, target []T) reconcile.ValidationCheck {
	matcher := reconcile.NewMatcher(target)
	var missing []string
	for _, item := range source {
		if !matcher.Contains(item) {
			missing = append(missing, item.EntityName())
		}
	}

	existing := len(source) - len(missing)
	return reconcile.ValidationCheck{
		Name:   name,
		Status: reconcile.CheckPass,
		Message: fmt.Sprintf("%d of %d %s exist in the target, %d will be created",
			existing, len(source), noun, len(missing)),
		Details: reconcile.BoundedDetails(missing),
	}
}
