package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/skytake/service/internal/metrics"
)

// defaultRegion is the only region where CreateBucket must not send a
// location constraint.
const defaultRegion = "us-east-1"

// S3API is the subset of *s3.Client used by S3Storage.
type S3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage implements Storage on the AWS SDK. It talks to AWS itself or to
// any S3-compatible endpoint using path-style addressing.
type S3Storage struct {
	client   S3API
	bucket   string
	endpoint string
	region   string
	log      *zap.Logger
}

// NewS3Client creates an S3 client with static credentials against endpoint.
func NewS3Client(ctx context.Context, endpoint, accessKey, secretKey, region string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})
	return client, nil
}

// NewS3Storage returns a Storage writing to bucket in region.
func NewS3Storage(client S3API, bucket, endpoint, region string, log *zap.Logger) *S3Storage {
	if log == nil {
		log = zap.NewNop()
	}
	return &S3Storage{
		client:   client,
		bucket:   bucket,
		endpoint: strings.TrimRight(endpoint, "/"),
		region:   region,
		log:      log,
	}
}

// Upload ensures the bucket exists, then puts obj with an explicit content length.
func (s *S3Storage) Upload(ctx context.Context, obj Object) (string, error) {
	key := objectKey(obj, s.log)

	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          obj.Reader,
		ContentLength: aws.Int64(obj.Size),
	}
	if obj.ContentType != "" {
		input.ContentType = aws.String(obj.ContentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", &Error{Op: "put object", Bucket: s.bucket, Key: key, Err: err}
	}

	return Location(s.endpoint, s.bucket, key), nil
}

func (s *S3Storage) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return &Error{Op: "check bucket", Bucket: s.bucket, Err: err}
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if s.region != "" && s.region != defaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var taken *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &taken) {
			return nil
		}
		return &Error{Op: "create bucket", Bucket: s.bucket, Err: err}
	}
	metrics.BucketsCreated.Inc()
	s.log.Info("storage: created bucket", zap.String("bucket", s.bucket))
	return nil
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
