package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"

	"schema-sync/core/reconcile"
	"schema-sync/core/storage"
	"schema-sync/core/utils"
)

// Store persists configuration snapshots in object storage under
// <prefix>/<PROJECT>/<timestamp>.json.
type Store struct {
	writer storage.Writer
	prefix string
}

// NewStore creates a snapshot store.
func NewStore(writer storage.Writer, prefix string) *Store {
	return &Store{writer: writer, prefix: prefix}
}

// Save writes cfg and returns its object key.
func (s *Store) Save(ctx context.Context, cfg *reconcile.ExportedConfiguration) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("refusing to save invalid configuration: %w", err)
	}

	folder := path.Join(s.prefix, cfg.Meta.SourceProject.Key)
	if err := s.writer.EnsureFolder(ctx, folder); err != nil {
		return "", err
	}

	data, err := Encode(cfg)
	if err != nil {
		return "", err
	}
	key := path.Join(folder, utils.SafeTimestamp(cfg.Meta.ExportedAt)+".json")
	if err := s.writer.WriteFile(ctx, key, data, "application/json"); err != nil {
		return "", err
	}
	return key, nil
}

// Load reads the snapshot stored at key.
func (s *Store) Load(ctx context.Context, key string) (*reconcile.ExportedConfiguration, error) {
	data, err := s.writer.ReadFile(ctx, key)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// List returns the snapshot keys of a project, oldest first.
func (s *Store) List(ctx context.Context, projectKey string) ([]string, error) {
	keys, err := s.writer.List(ctx, path.Join(s.prefix, projectKey)+"/")
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Open resolves ref as a local file when one exists, otherwise as an object
// key in store. store may be nil for file-only use.
func Open(ctx context.Context, store *Store, ref string) (*reconcile.ExportedConfiguration, error) {
	if _, err := os.Stat(ref); err == nil {
		return LoadFile(ref)
	}
	if store == nil {
		return nil, fmt.Errorf("configuration %s not found and no storage configured", ref)
	}
	return store.Load(ctx, ref)
}

// LoadFile reads a snapshot from the local filesystem.
func LoadFile(name string) (*reconcile.ExportedConfiguration, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	return Decode(data)
}

// WriteFile writes a snapshot to the local filesystem.
func WriteFile(name string, cfg *reconcile.ExportedConfiguration) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

// Encode renders a snapshot as indented JSON.
func Encode(cfg *reconcile.ExportedConfiguration) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	return data, nil
}

// Decode parses and validates a snapshot.
func Decode(data []byte) (*reconcile.ExportedConfiguration, error) {
	var cfg reconcile.ExportedConfiguration
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
