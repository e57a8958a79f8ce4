package export

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"schema-sync/core/reconcile"
	"schema-sync/core/storage"
	"schema-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *reconcile.ExportedConfiguration {
	return &reconcile.ExportedConfiguration{
		Meta: reconcile.ExportMeta{
			SchemaVersion: reconcile.SchemaVersion,
			ExportedAt:    time.Date(2026, 3, 1, 12, 30, 5, 0, time.UTC),
			SourceProject: reconcile.ProjectRef{ID: "100", Key: "SRC", ProjectType: "software"},
		},
		Fields: []reconcile.FieldDefinition{{ID: "customfield_1", Name: "Team", IsCustom: true}},
	}
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestStore_Save(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(storage.NewFolderWriter(client, "bucket"), "exports")

	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return(emptyListing())
	client.On("PutObject", mock.Anything, "bucket", "exports/SRC/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("PutObject", mock.Anything, "bucket", "exports/SRC/2026-03-01T12-30-05Z.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	key, err := store.Save(context.Background(), sampleConfig())
	require.NoError(t, err)
	assert.Equal(t, "exports/SRC/2026-03-01T12-30-05Z.json", key)
	client.AssertExpectations(t)
}

func TestStore_SaveRejectsInvalid(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(storage.NewFolderWriter(client, "bucket"), "exports")

	cfg := sampleConfig()
	cfg.Meta.SchemaVersion = "0.9"
	_, err := store.Save(context.Background(), cfg)
	assert.ErrorContains(t, err, "schema version")
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStore_Load(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(storage.NewFolderWriter(client, "bucket"), "exports")

	data, err := Encode(sampleConfig())
	require.NoError(t, err)
	client.On("GetObject", mock.Anything, "bucket", "exports/SRC/a.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(string(data))), nil)

	cfg, err := Open(context.Background(), store, "exports/SRC/a.json")
	require.NoError(t, err)
	assert.Equal(t, "SRC", cfg.Meta.SourceProject.Key)
}

func TestLocalFileRoundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "src.json")
	require.NoError(t, WriteFile(name, sampleConfig()))

	cfg, err := Open(context.Background(), nil, name)
	require.NoError(t, err)
	assert.Equal(t, "Team", cfg.Fields[0].Name)

	_, err = Open(context.Background(), nil, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "no storage configured")
}

func TestDecode_InvalidWorkflow(t *testing.T) {
	_, err := Decode([]byte(`{
		"meta": {"schemaVersion": "1.0", "sourceProject": {"key": "SRC"}},
		"workflows": [{"name": "W", "statuses": [{"id": "1"}], "transitions": [{"name": "go", "to": "2"}]}]
	}`))
	assert.ErrorContains(t, err, "unknown status")
}
