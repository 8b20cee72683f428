package repository

import (
	"context"
	"io"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
)

// StorageRepository defines the interface for S3-compatible object store interactions.
type StorageRepository interface {
	// Bucket Operations
	BucketExists(ctx context.Context, bucket string) (bool, error)
	CreateBucket(ctx context.Context, bucket string) error

	// Lifecycle Operations
	GetLifecycleRules(ctx context.Context, bucket string) ([]entity.LifecycleRule, error)
	PutLifecycleRules(ctx context.Context, bucket string, rules []entity.LifecycleRule) error

	// Object Operations
	UploadStream(ctx context.Context, bucket, key string, body io.ReadSeeker) error
	UploadFile(ctx context.Context, bucket, key, path string) error

	// Connectivity
	ListBuckets(ctx context.Context) ([]string, error)
}

// StorageFactory builds a StorageRepository for an arbitrary endpoint and credentials.
type StorageFactory func(ctx context.Context, host, user, token, region string) (StorageRepository, error)
