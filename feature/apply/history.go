package apply

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"schema-sync/core/reconcile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultHistoryLimit is the number of runs List returns when no limit is given.
const DefaultHistoryLimit = 20

// ApplyRun is a recorded apply run.
type ApplyRun struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	SourceProject string    `gorm:"size:64;index" json:"sourceProject"`
	TargetProject string    `gorm:"size:64;index" json:"targetProject"`
	DryRun        bool      `json:"dryRun"`
	Success       bool      `json:"success"`
	BackupPath    string    `gorm:"size:512" json:"backupPath"`
	Result        string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
}

// TableName sets the table name.
func (ApplyRun) TableName() string {
	return "apply_runs"
}

// Decode returns the stored apply result.
func (r ApplyRun) Decode() (*reconcile.ApplyResult, error) {
	var result reconcile.ApplyResult
	if err := json.Unmarshal([]byte(r.Result), &result); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", r.ID, err)
	}
	return &result, nil
}

// History stores apply runs.
type History struct {
	db *gorm.DB
}

// NewHistory creates a history store.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Migrate creates or updates the history table.
func (h *History) Migrate() error {
	if err := h.db.AutoMigrate(&ApplyRun{}); err != nil {
		return fmt.Errorf("failed to migrate apply history: %w", err)
	}
	return nil
}

// Record stores the outcome of a run.
func (h *History) Record(ctx context.Context, source, target string, dryRun bool, result *reconcile.ApplyResult) (*ApplyRun, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode apply result: %w", err)
	}
	run := &ApplyRun{
		ID:            uuid.NewString(),
		SourceProject: source,
		TargetProject: target,
		DryRun:        dryRun,
		Success:       result.Success,
		BackupPath:    result.BackupPath,
		Result:        string(data),
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to record apply run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs that involve project as source or
// target, newest first. An empty project lists every run.
func (h *History) List(ctx context.Context, project string, limit int) ([]ApplyRun, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	q := h.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if project != "" {
		q = q.Where("source_project = ? OR target_project = ?", project, project)
	}
	var runs []ApplyRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list apply runs: %w", err)
	}
	return runs, nil
}
