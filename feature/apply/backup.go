package apply

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"schema-sync/core/reconcile"
	"schema-sync/core/utils"

	"github.com/google/uuid"
)

// BackupType marks a pre-apply snapshot.
const BackupType = "pre-import-backup"

// Folder is the hierarchical write target backups go to.
type Folder interface {
	EnsureFolder(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, data []byte, contentType string) error
}

// Backup is the record written before an apply run mutates anything. It is a
// forensic artifact for manual recovery; nothing restores from it.
type Backup struct {
	CreatedAt     time.Time `json:"createdAt"`
	TargetProject string    `json:"targetProject"`
	SourceProject string    `json:"sourceProject"`
	Type          string    `json:"type"`
}

// BackupWriter writes backup records under <prefix>/<TARGET>/.
type BackupWriter struct {
	folder Folder
	prefix string
	now    func() time.Time
}

// NewBackupWriter creates a backup writer.
func NewBackupWriter(folder Folder, prefix string) *BackupWriter {
	return &BackupWriter{
		folder: folder,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Write persists a backup record and returns its path. Every call gets a
// fresh path.
func (w *BackupWriter) Write(ctx context.Context, source *reconcile.ExportedConfiguration, target *reconcile.ProjectRef) (string, error) {
	if w == nil || w.folder == nil {
		return "", fmt.Errorf("no backup storage configured")
	}

	created := w.now()
	record := Backup{
		CreatedAt:     created,
		TargetProject: target.Key,
		SourceProject: source.Meta.SourceProject.Key,
		Type:          BackupType,
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}

	folder := path.Join(w.prefix, target.Key)
	if err := w.folder.EnsureFolder(ctx, folder); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s.json", utils.SafeTimestamp(created), uuid.NewString()[:8])
	file := path.Join(folder, name)
	if err := w.folder.WriteFile(ctx, file, data, "application/json"); err != nil {
		return "", err
	}
	return file, nil
}
