package upload

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skytake/service/internal/storage"
)

func TestService_UploadDefaultsContentType(t *testing.T) {
	store := newStub()
	svc := NewService(store, 0)

	if _, err := svc.Upload(context.Background(), File{Name: "menu.pdf", Size: 3, Reader: strings.NewReader("pdf")}); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if store.last.ContentType != defaultContentType {
		t.Fatalf("expected %q, got %q", defaultContentType, store.last.ContentType)
	}
	if store.ctxOK {
		t.Fatal("expected no deadline when timeout is zero")
	}
	if store.last.FileName != "menu.pdf" || !strings.HasSuffix(store.last.Key, ".pdf") {
		t.Fatalf("unexpected object %+v", store.last)
	}
}

func TestService_UploadErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		storeErr error
		panicMsg string
		kind     string
	}{
		{name: "invalid filename", file: "noext", kind: KindInvalidFilename},
		{
			name:     "storage failure",
			file:     "a.png",
			storeErr: &storage.Error{Op: "check bucket", Bucket: "skytake", Err: errors.New("timeout")},
			kind:     KindStorageFailure,
		},
		{name: "unclassified error", file: "a.png", storeErr: errors.New("reader closed"), kind: KindUnknown},
		{name: "panic", file: "a.png", panicMsg: "boom", kind: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStub()
			store.err = tt.storeErr
			store.panicMsg = tt.panicMsg
			svc := NewService(store, 0)

			url, err := svc.Upload(context.Background(), File{Name: tt.file, Size: 1, Reader: strings.NewReader("x")})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if url != "" {
				t.Fatalf("expected empty url, got %q", url)
			}
			if got := Kind(err); got != tt.kind {
				t.Fatalf("expected kind %q, got %q (%v)", tt.kind, got, err)
			}
			if tt.kind == KindUnknown && !errors.Is(err, ErrUnknown) {
				t.Fatalf("expected ErrUnknown, got %v", err)
			}
		})
	}
}
