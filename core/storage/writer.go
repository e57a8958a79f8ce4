package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Backends accepted by NewWriter.
const (
	BackendS3    = "s3"
	BackendLocal = "local"
)

// Writer is a hierarchical file store.
type Writer interface {
	// Prepare makes sure the backing bucket or directory exists.
	Prepare(ctx context.Context) error
	EnsureFolder(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, data []byte, contentType string) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

var (
	_ Writer = (*FolderWriter)(nil)
	_ Writer = (*LocalWriter)(nil)
)

// NewWriter builds the Writer for the configured backend.
func NewWriter(cfg Config) (Writer, error) {
	switch cfg.Backend {
	case BackendLocal:
		return NewLocalWriter(cfg.LocalRoot), nil
	case BackendS3, "":
		client, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewFolderWriter(client, cfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// LocalWriter stores files below a root directory.
type LocalWriter struct {
	root string
}

// NewLocalWriter creates a LocalWriter rooted at root.
func NewLocalWriter(root string) *LocalWriter {
	return &LocalWriter{root: root}
}

func (w *LocalWriter) resolve(path string) string {
	return filepath.Join(w.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
}

// Prepare creates the root directory.
func (w *LocalWriter) Prepare(_ context.Context) error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("failed to create storage root %s: %w", w.root, err)
	}
	return nil
}

// EnsureFolder creates path and its parents.
func (w *LocalWriter) EnsureFolder(_ context.Context, path string) error {
	if err := os.MkdirAll(w.resolve(path), 0o755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", path, err)
	}
	return nil
}

// WriteFile stores data at path, creating parent folders as needed.
func (w *LocalWriter) WriteFile(_ context.Context, path string, data []byte, _ string) error {
	full := w.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile returns the content stored at path.
func (w *LocalWriter) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(w.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// List returns the slash-separated file paths under prefix, sorted.
func (w *LocalWriter) List(_ context.Context, prefix string) ([]string, error) {
	base := w.resolve(prefix)
	var keys []string
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.root, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}
	sort.Strings(keys)
	return keys, nil
}
