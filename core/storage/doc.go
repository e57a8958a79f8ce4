// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the rest of the application can persist
// pre-apply backups and exported configurations to AWS S3 or a self-hosted
// MinIO instance.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # FolderWriter
//
// FolderWriter layers a hierarchical view on top of a bucket:
//
//   - Prepare: creates the bucket when it does not exist.
//   - EnsureFolder: creates a zero-byte "path/" marker when nothing exists under path.
//   - WriteFile: uploads content at a path.
//   - ReadFile: downloads content from a path.
//   - List: lists file keys under a prefix.
//
// LocalWriter implements the same Writer interface on a local directory, for
// command line use without an object store. NewWriter picks one from Config.Backend.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	writer := storage.NewFolderWriter(client, config.Bucket)
//	err = writer.EnsureFolder(ctx, "backups/PROJ")
package storage
