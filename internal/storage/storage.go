// Package storage uploads objects to an S3-compatible store and hands back
// their public URL. MinIO and AWS S3 are both supported; the driver is picked
// at startup and the rest of the service only sees Storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/skytake/service/internal/config"
)

// ErrStorageFailure matches every error returned by a Storage implementation.
var ErrStorageFailure = errors.New("storage failure")

// Object is a single request-scoped upload. Reader must yield exactly Size bytes.
type Object struct {
	Key         string
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Storage is the interface for putting objects into the configured bucket.
type Storage interface {
	// Upload ensures the bucket exists, streams obj into it and returns the
	// object's public URL.
	Upload(ctx context.Context, obj Object) (string, error)
}

// Error wraps a failure from the remote store.
type Error struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage: %s %q: %v", e.Op, e.Bucket, e.Err)
	}
	return fmt.Sprintf("storage: %s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrStorageFailure for every storage error.
func (e *Error) Is(target error) bool { return target == ErrStorageFailure }

// Location formats the public URL of key: "<endpoint>/<bucket>/<key>".
func Location(endpoint, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint, "/"), bucket, key)
}

// objectKey falls back to the original filename when no key was generated.
func objectKey(obj Object, log *zap.Logger) string {
	if obj.Key != "" {
		return obj.Key
	}
	log.Warn("storage: empty object key, using original filename", zap.String("filename", obj.FileName))
	return obj.FileName
}

// New builds the Storage selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverS3:
		client, err := NewS3Client(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioRegion)
		if err != nil {
			return nil, err
		}
		return NewS3Storage(client, cfg.MinioBucket, cfg.MinioEndpoint, cfg.MinioRegion, log), nil
	default:
		client, err := NewMinioClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioRegion)
		if err != nil {
			return nil, err
		}
		return NewMinioStorage(client, cfg.MinioBucket, cfg.MinioEndpoint, log), nil
	}
}
