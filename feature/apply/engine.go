package apply

import (
	"context"
	"errors"
	"fmt"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Step names, in execution order.
const (
	StepBackup     = "backup"
	StepFields     = "fields"
	StepIssueTypes = "issueTypes"
	StepStatuses   = "statuses"
	StepBoards     = "boards"
)

// Advisory messages derived from the diff shape.
const (
	ManualDryRun      = "This was a dry run. No changes were made to the target project."
	ManualWorkflows   = "Review workflow transitions manually: only statuses were created, transitions are not reconciled."
	ManualBoards      = "Configure board columns manually: new boards start with the default column layout."
	ManualIssueTypes  = "Assign new issue types to the project's workflow and screen schemes manually."
	ManualBackupError = "No changes were made because the pre-apply backup could not be written."
)

// Engine reconciles a target project towards a snapshot, one step per
// entity type. Steps are best effort: a failing step never stops later ones.
type Engine struct {
	client  tracker.Client
	backups *BackupWriter
	logger  *zap.Logger
}

// NewEngine creates an apply engine.
func NewEngine(client tracker.Client, backups *BackupWriter, logger *zap.Logger) *Engine {
	return &Engine{client: client, backups: backups, logger: logger}
}

// run carries the state of one apply run. A failed target read is kept on
// the run and reported by the steps that depend on it.
type run struct {
	source    *reconcile.ExportedConfiguration
	target    *reconcile.ProjectRef
	diff      *reconcile.ConfigurationDiff
	opts      reconcile.ApplyOptions
	logger    *zap.Logger
	fields    []reconcile.FieldDefinition
	fieldsErr error
	types     *reconcile.Matcher[reconcile.IssueTypeDefinition]
	typesErr  error
	scheme    *tracker.IssueTypeScheme
	globals   []reconcile.IssueTypeDefinition
	loaded    bool
}

// Apply executes the diff against target. The returned error is only set
// when no result could be produced; item failures are reported in the result.
func (e *Engine) Apply(ctx context.Context, source *reconcile.ExportedConfiguration, target *reconcile.ProjectRef, diff *reconcile.ConfigurationDiff, opts reconcile.ApplyOptions) (*reconcile.ApplyResult, error) {
	if source == nil || target == nil || diff == nil {
		return nil, errors.New("source, target and diff are required")
	}

	r := &run{
		source: source,
		target: target,
		diff:   diff,
		opts:   opts,
		logger: e.logger.With(zap.String("source", source.Meta.SourceProject.Key), zap.String("target", target.Key)),
	}

	backupPath, err := e.backups.Write(ctx, source, target)
	if err != nil {
		r.logger.Error("Backup failed", zap.Error(err))
		step := reconcile.NewStepResult(StepBackup, []reconcile.ApplyItemResult{{
			Name:   BackupType,
			Status: reconcile.ItemError,
			Error:  err.Error(),
		}})
		if opts.DryRun {
			result := dryRun(diff, step)
			result.ManualSteps = append(result.ManualSteps, ManualBackupError)
			return result, nil
		}
		return &reconcile.ApplyResult{
			Success:     false,
			Results:     []reconcile.ApplyStepResult{step},
			ManualSteps: []string{ManualBackupError},
		}, nil
	}
	r.logger.Info("Backup written", zap.String("path", backupPath))

	backupStep := reconcile.NewStepResult(StepBackup, []reconcile.ApplyItemResult{{
		Name:   BackupType,
		Status: reconcile.ItemSuccess,
		Reason: "Snapshot written",
	}})
	backupStep.ArtifactPath = backupPath

	if opts.DryRun {
		r.logger.Info("Dry run, no changes will be made")
		return dryRun(diff, backupStep), nil
	}

	e.prefetch(ctx, r)

	steps := []reconcile.ApplyStepResult{backupStep}
	steps = append(steps, e.step(ctx, r, StepFields, e.applyFields))
	steps = append(steps, e.step(ctx, r, StepIssueTypes, e.applyIssueTypes))
	steps = append(steps, e.step(ctx, r, StepStatuses, e.applyStatuses))
	steps = append(steps, e.step(ctx, r, StepBoards, e.applyBoards))

	result := &reconcile.ApplyResult{
		Success:     reconcile.RunSucceeded(steps),
		BackupPath:  backupPath,
		Results:     steps,
		ManualSteps: manualSteps(diff),
	}
	r.logger.Info("Apply finished", zap.Bool("success", result.Success))
	return result, nil
}

func (e *Engine) step(ctx context.Context, r *run, name string, fn func(context.Context, *run) []reconcile.ApplyItemResult) reconcile.ApplyStepResult {
	r.logger.Info("Apply step started", zap.String("step", name))
	res := reconcile.NewStepResult(name, fn(ctx, r))
	r.logger.Info("Apply step finished", zap.String("step", name), zap.String("status", string(res.Status)))
	return res
}

// prefetch reads the target state the field and issue type steps depend on.
// The reads are independent: one failing does not cancel the others.
func (e *Engine) prefetch(ctx context.Context, r *run) {
	var (
		types     []reconcile.IssueTypeDefinition
		scheme    *tracker.IssueTypeScheme
		schemeErr error
		g         errgroup.Group
	)
	g.Go(func() error {
		r.fields, r.fieldsErr = e.client.GetProjectFields(ctx, r.target.ID)
		return nil
	})
	g.Go(func() error {
		types, r.typesErr = e.client.GetIssueTypesForProject(ctx, r.target.ID)
		return nil
	})
	g.Go(func() error {
		scheme, schemeErr = e.client.GetIssueTypeSchemeForProject(ctx, r.target.ID)
		return nil
	})
	_ = g.Wait()

	if r.fieldsErr != nil {
		r.logger.Error("Failed to read target fields", zap.Error(r.fieldsErr))
		r.fieldsErr = fmt.Errorf("read fields of %s: %w", r.target.Key, r.fieldsErr)
	}
	if r.typesErr == nil && schemeErr != nil {
		r.typesErr = schemeErr
	}
	if r.typesErr != nil {
		r.logger.Error("Failed to read target issue types", zap.Error(r.typesErr))
		r.typesErr = fmt.Errorf("read issue types of %s: %w", r.target.Key, r.typesErr)
		return
	}
	r.types = reconcile.NewMatcher(types)
	r.scheme = scheme
}

// unreadable reports every item of a step as failed because the target
// state it depends on could not be read.
func unreadable(names []string, reason string, err error) []reconcile.ApplyItemResult {
	results := make([]reconcile.ApplyItemResult, 0, len(names))
	for _, name := range names {
		results = append(results, failed(name, reason, err))
	}
	return results
}

// globalIssueTypes lazily loads every issue type of the instance.
func (e *Engine) globalIssueTypes(ctx context.Context, r *run) ([]reconcile.IssueTypeDefinition, error) {
	if r.loaded {
		return r.globals, nil
	}
	all, err := e.client.GetAllIssueTypes(ctx)
	if err != nil {
		return nil, err
	}
	r.globals, r.loaded = all, true
	return all, nil
}

// manualSteps derives advisory messages from the diff shape only.
func manualSteps(diff *reconcile.ConfigurationDiff) []string {
	steps := []string{}
	if len(diff.Workflows.Modified) > 0 {
		steps = append(steps, ManualWorkflows)
	}
	if len(diff.Boards.New) > 0 {
		steps = append(steps, ManualBoards)
	}
	if len(diff.IssueTypes.New) > 0 {
		steps = append(steps, ManualIssueTypes)
	}
	return steps
}

func success(name, reason string) reconcile.ApplyItemResult {
	return reconcile.ApplyItemResult{Name: name, Status: reconcile.ItemSuccess, Reason: reason}
}

func skipped(name, reason string) reconcile.ApplyItemResult {
	return reconcile.ApplyItemResult{Name: name, Status: reconcile.ItemSkipped, Reason: reason}
}

func failed(name, reason string, err error) reconcile.ApplyItemResult {
	return reconcile.ApplyItemResult{Name: name, Status: reconcile.ItemError, Reason: reason, Error: err.Error()}
}
