package seed

import (
	"context"
	"fmt"
	"os"

	"teamboard/core/storage"
)

// Source provides the raw seed document.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Read returns the whole document.
	Read(ctx context.Context) ([]byte, error)
}

// FileSource reads the seed document from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string {
	return "file://" + s.Path
}

func (s FileSource) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImport, err)
	}
	return data, nil
}

// BucketSource reads the seed document from object storage.
type BucketSource struct {
	Client storage.Client
	Bucket string
	Object string
}

func (s BucketSource) Name() string {
	return "s3://" + s.Bucket + "/" + s.Object
}

func (s BucketSource) Read(ctx context.Context) ([]byte, error) {
	data, err := storage.ReadObject(ctx, s.Client, s.Bucket, s.Object)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImport, err)
	}
	return data, nil
}

// SourceFromConfig picks the bucket object when configured and a client is available,
// otherwise the local file. It returns nil when neither is set.
func SourceFromConfig(cfg Config, client storage.Client, bucket string) Source {
	if cfg.Object != "" && client != nil {
		return BucketSource{Client: client, Bucket: bucket, Object: cfg.Object}
	}
	if cfg.Path != "" {
		return FileSource{Path: cfg.Path}
	}
	return nil
}
