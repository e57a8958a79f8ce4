package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"schema-sync/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalWriter(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	w := storage.NewLocalWriter(root)

	require.NoError(t, w.EnsureFolder(ctx, "backups/PROJ"))
	assert.DirExists(t, filepath.Join(root, "backups", "PROJ"))

	require.NoError(t, w.WriteFile(ctx, "/exports/PROJ/b.json", []byte("b"), "application/json"))
	require.NoError(t, w.WriteFile(ctx, "exports/PROJ/a.json", []byte("a"), ""))

	data, err := w.ReadFile(ctx, "exports/PROJ/a.json")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	keys, err := w.List(ctx, "exports/PROJ")
	require.NoError(t, err)
	assert.Equal(t, []string{"exports/PROJ/a.json", "exports/PROJ/b.json"}, keys)

	keys, err = w.List(ctx, "exports/OTHER")
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = w.ReadFile(ctx, "missing.json")
	assert.Error(t, err)
}

func TestLocalWriter_Prepare(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "data")
	w := storage.NewLocalWriter(root)

	require.NoError(t, w.Prepare(context.Background()))
	assert.DirExists(t, root)
}

func TestNewWriter(t *testing.T) {
	t.Run("Local", func(t *testing.T) {
		w, err := storage.NewWriter(storage.Config{Backend: storage.BackendLocal, LocalRoot: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &storage.LocalWriter{}, w)
	})

	t.Run("S3", func(t *testing.T) {
		w, err := storage.NewWriter(storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "b"})
		require.NoError(t, err)
		assert.IsType(t, &storage.FolderWriter{}, w)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := storage.NewWriter(storage.Config{Backend: "ftp"})
		assert.Error(t, err)
	})
}
