package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/skytake/service/internal/metrics"
)

// MinioAPI is the subset of *minio.Client used by MinioStorage.
type MinioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioStorage implements Storage using a MinIO (or any S3-compatible) backend.
type MinioStorage struct {
	client   MinioAPI
	bucket   string
	endpoint string
	log      *zap.Logger
}

// NewMinioClient creates a MinIO client from a base URL such as
// "http://localhost:9000". An https scheme enables TLS; a bare host:port is
// treated as plain http.
func NewMinioClient(endpoint, accessKey, secretKey, region string) (*minio.Client, error) {
	host, secure, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return client, nil
}

// NewMinioStorage returns a Storage writing to bucket. endpoint is the public
// base URL used to build object locations.
func NewMinioStorage(client MinioAPI, bucket, endpoint string, log *zap.Logger) *MinioStorage {
	if log == nil {
		log = zap.NewNop()
	}
	return &MinioStorage{
		client:   client,
		bucket:   bucket,
		endpoint: strings.TrimRight(endpoint, "/"),
		log:      log,
	}
}

// Upload ensures the bucket exists, then streams obj.Size bytes under its key.
func (s *MinioStorage) Upload(ctx context.Context, obj Object) (string, error) {
	key := objectKey(obj, s.log)

	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, obj.Reader, obj.Size, minio.PutObjectOptions{
		ContentType: obj.ContentType,
	})
	if err != nil {
		return "", &Error{Op: "put object", Bucket: s.bucket, Key: key, Err: err}
	}

	return Location(s.endpoint, s.bucket, key), nil
}

// ensureBucket creates the bucket when missing. Two callers may both see it
// absent; the loser's "already exists" reply counts as success.
func (s *MinioStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return &Error{Op: "check bucket", Bucket: s.bucket, Err: err}
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		if bucketAlreadyExists(err) {
			return nil
		}
		return &Error{Op: "create bucket", Bucket: s.bucket, Err: err}
	}
	metrics.BucketsCreated.Inc()
	s.log.Info("storage: created bucket", zap.String("bucket", s.bucket))
	return nil
}

func bucketAlreadyExists(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
		return true
	}
	return false
}

func splitEndpoint(endpoint string) (host string, secure bool, err error) {
	if !strings.Contains(endpoint, "://") {
		return strings.TrimRight(endpoint, "/"), false, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("parse storage endpoint: %w", err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("storage endpoint %q has no host", endpoint)
	}
	return u.Host, u.Scheme == "https", nil
}
