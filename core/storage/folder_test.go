package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"schema-sync/core/storage"
	"schema-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestFolderWriter_EnsureFolder(t *testing.T) {
	t.Run("CreatesMissingFolder", func(t *testing.T) {
		client := new(mocks.Client)
		writer := storage.NewFolderWriter(client, "bucket")

		client.On("ListObjects", mock.Anything, "bucket", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
			return o.Prefix == "backups/PROJ/"
		})).Return(objects())
		client.On("PutObject", mock.Anything, "bucket", "backups/PROJ/", mock.Anything, int64(0), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		require.NoError(t, writer.EnsureFolder(context.Background(), "/backups/PROJ/"))
		client.AssertExpectations(t)
	})

	t.Run("ExistingFolder", func(t *testing.T) {
		client := new(mocks.Client)
		writer := storage.NewFolderWriter(client, "bucket")

		client.On("ListObjects", mock.Anything, "bucket", mock.Anything).
			Return(objects(minio.ObjectInfo{Key: "backups/PROJ/"}))

		require.NoError(t, writer.EnsureFolder(context.Background(), "backups/PROJ"))
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CancelsListingOnReturn", func(t *testing.T) {
		client := new(mocks.Client)
		writer := storage.NewFolderWriter(client, "bucket")

		var listCtx context.Context
		client.On("ListObjects", mock.Anything, "bucket", mock.Anything).
			Run(func(args mock.Arguments) { listCtx = args.Get(0).(context.Context) }).
			Return(objects(minio.ObjectInfo{Key: "backups/PROJ/a.json"}, minio.ObjectInfo{Key: "backups/PROJ/b.json"}))

		require.NoError(t, writer.EnsureFolder(context.Background(), "backups/PROJ"))
		require.NotNil(t, listCtx)
		assert.ErrorIs(t, listCtx.Err(), context.Canceled)
	})

	t.Run("ListError", func(t *testing.T) {
		client := new(mocks.Client)
		writer := storage.NewFolderWriter(client, "bucket")

		client.On("ListObjects", mock.Anything, "bucket", mock.Anything).
			Return(objects(minio.ObjectInfo{Err: errors.New("access denied")}))

		err := writer.EnsureFolder(context.Background(), "backups")
		assert.ErrorContains(t, err, "access denied")
	})

	t.Run("RootIsNoop", func(t *testing.T) {
		client := new(mocks.Client)
		writer := storage.NewFolderWriter(client, "bucket")
		assert.NoError(t, writer.EnsureFolder(context.Background(), "/"))
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFolderWriter_WriteFile(t *testing.T) {
	client := new(mocks.Client)
	writer := storage.NewFolderWriter(client, "bucket")
	data := []byte(`{"ok":true}`)

	client.On("PutObject", mock.Anything, "bucket", "exports/PROJ/a.json", mock.Anything, int64(len(data)),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "application/json" })).
		Return(minio.UploadInfo{}, nil).Once()
	client.On("PutObject", mock.Anything, "bucket", "broken", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("disk full")).Once()

	assert.NoError(t, writer.WriteFile(context.Background(), "/exports/PROJ/a.json", data, "application/json"))
	assert.ErrorContains(t, writer.WriteFile(context.Background(), "broken", data, ""), "disk full")
}

func TestFolderWriter_ReadFile(t *testing.T) {
	client := new(mocks.Client)
	writer := storage.NewFolderWriter(client, "bucket")

	client.On("GetObject", mock.Anything, "bucket", "exports/a.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader("payload")), nil)

	data, err := writer.ReadFile(context.Background(), "exports/a.json")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestFolderWriter_List(t *testing.T) {
	client := new(mocks.Client)
	writer := storage.NewFolderWriter(client, "bucket")

	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return(objects(
		minio.ObjectInfo{Key: "exports/PROJ/"},
		minio.ObjectInfo{Key: "exports/PROJ/1.json"},
		minio.ObjectInfo{Key: "exports/PROJ/2.json"},
	))

	keys, err := writer.List(context.Background(), "exports/PROJ")
	require.NoError(t, err)
	assert.Equal(t, []string{"exports/PROJ/1.json", "exports/PROJ/2.json"}, keys)
}

func TestFolderWriter_Prepare(t *testing.T) {
	t.Run("CreatesMissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		writer := storage.NewFolderWriter(client, "bucket")
		client.On("BucketExists", mock.Anything, "bucket").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "bucket", mock.Anything).Return(nil)

		require.NoError(t, writer.Prepare(context.Background()))
		client.AssertExpectations(t)
	})

	t.Run("ExistingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		writer := storage.NewFolderWriter(client, "bucket")
		client.On("BucketExists", mock.Anything, "bucket").Return(true, nil)

		require.NoError(t, writer.Prepare(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unreachable", func(t *testing.T) {
		client := new(mocks.Client)
		writer := storage.NewFolderWriter(client, "bucket")
		client.On("BucketExists", mock.Anything, "bucket").Return(false, errors.New("connection refused"))

		assert.ErrorContains(t, writer.Prepare(context.Background()), "connection refused")
	})
}
