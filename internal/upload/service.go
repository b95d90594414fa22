package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/skytake/service/internal/metrics"
	"github.com/skytake/service/internal/storage"
)

// ErrInvalidFilename is returned when the filename has no extension to keep.
var ErrInvalidFilename = errors.New("filename has no extension")

// ErrUnknown wraps any failure that is neither a bad filename nor a storage error.
var ErrUnknown = errors.New("unknown upload failure")

// Failure kinds reported in logs and metrics.
const (
	KindInvalidFilename = "invalid_filename"
	KindStorageFailure  = "storage_failure"
	KindUnknown         = "unknown"
)

const defaultContentType = "application/octet-stream"

// File is one inbound upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Service turns an inbound file into a stored object.
type Service struct {
	store   storage.Storage
	timeout time.Duration
}

// NewService creates a new upload Service. timeout bounds each storage call;
// zero disables it.
func NewService(store storage.Storage, timeout time.Duration) *Service {
	return &Service{store: store, timeout: timeout}
}

// Upload stores f under a fresh key and returns its public URL. The key is
// derived before any network call, so a bad filename never reaches storage.
func (s *Service) Upload(ctx context.Context, f File) (url string, err error) {
	key, err := ObjectKey(f.Name)
	if err != nil {
		return "", err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	defer func() {
		if r := recover(); r != nil {
			url, err = "", fmt.Errorf("%w: panic: %v", ErrUnknown, r)
		}
	}()

	start := time.Now()
	url, err = s.store.Upload(ctx, storage.Object{
		Key:         key,
		FileName:    f.Name,
		ContentType: contentType,
		Size:        f.Size,
		Reader:      f.Reader,
	})
	metrics.UploadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, storage.ErrStorageFailure) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrUnknown, err)
	}

	metrics.UploadBytes.Add(float64(f.Size))
	return url, nil
}

// Kind classifies an Upload error.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFilename):
		return KindInvalidFilename
	case errors.Is(err, storage.ErrStorageFailure):
		return KindStorageFailure
	default:
		return KindUnknown
	}
}
