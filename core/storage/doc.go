// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so recipe exports can live in AWS S3 or a
// self-hosted MinIO bucket instead of a local jeiexporter folder.
//
// # Client Interface
//
// The Client interface only carries the operations the importer and the
// integrity check need, which keeps it easy to mock (see core/storage/mocks).
//
//   - BucketExists: verifies access to the target bucket.
//   - ListObjects: enumerates export files under a prefix.
//   - GetObject: streams an export file.
//   - PutObject: publishes a local export folder.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
