package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// FolderWriter is a hierarchical write target on top of a bucket.
// Folders are zero-byte objects whose key ends in "/".
type FolderWriter struct {
	client Client
	bucket string
}

// NewFolderWriter creates a FolderWriter for the given bucket.
func NewFolderWriter(client Client, bucket string) *FolderWriter {
	return &FolderWriter{client: client, bucket: bucket}
}

// Bucket returns the bucket the writer targets.
func (w *FolderWriter) Bucket() string {
	return w.bucket
}

// Prepare creates the bucket when it does not exist yet.
func (w *FolderWriter) Prepare(ctx context.Context) error {
	exists, err := w.client.BucketExists(ctx, w.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", w.bucket, err)
	}
	if exists {
		return nil
	}
	if err := w.client.MakeBucket(ctx, w.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", w.bucket, err)
	}
	return nil
}

// EnsureFolder creates a folder marker unless something already lives under path.
func (w *FolderWriter) EnsureFolder(ctx context.Context, path string) error {
	prefix := strings.Trim(path, "/") + "/"
	if prefix == "/" {
		return nil
	}

	exists, err := w.anyUnder(ctx, prefix)
	if err != nil || exists {
		return err
	}

	_, err = w.client.PutObject(ctx, w.bucket, prefix, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to create folder %s: %w", prefix, err)
	}
	return nil
}

// anyUnder reports whether at least one object lives under prefix. The
// listing is cancelled on return so the lister goroutine exits.
func (w *FolderWriter) anyUnder(ctx context.Context, prefix string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: false, MaxKeys: 1}
	for obj := range w.client.ListObjects(ctx, w.bucket, opts) {
		if obj.Err != nil {
			return false, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		return true, nil
	}
	return false, nil
}

// WriteFile stores data at path, replacing any previous content.
func (w *FolderWriter) WriteFile(ctx context.Context, path string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := strings.TrimPrefix(path, "/")
	_, err := w.client.PutObject(ctx, w.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// ReadFile returns the content stored at path.
func (w *FolderWriter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	key := strings.TrimPrefix(path, "/")
	obj, err := w.client.GetObject(ctx, w.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// List returns the object keys under prefix, folder markers excluded.
func (w *FolderWriter) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{Prefix: strings.TrimPrefix(prefix, "/"), Recursive: true}
	var keys []string
	for obj := range w.client.ListObjects(ctx, w.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
