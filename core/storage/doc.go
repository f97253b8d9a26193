// Package storage provides access to S3-compatible object storage.
//
// It wraps the MinIO Go client behind a small Client interface. The team board
// only reads seed files from a bucket (and uploads them from the CLI), so the
// interface is limited to those operations; core/storage/mocks holds a testify
// mock for unit tests.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "seed/teams.json")
package storage
