package upload

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/skytake/service/internal/metrics"
	"github.com/skytake/service/internal/response"
)

// MsgUploadFailed is the only failure message clients ever see.
const MsgUploadFailed = "upload failed"

// Handler holds the HTTP handler for the common upload endpoint.
type Handler struct {
	svc      *Service
	maxBytes int64
	log      *zap.Logger
}

// NewHandler creates a new upload Handler. Request bodies above maxBytes are rejected.
func NewHandler(svc *Service, maxBytes int64, log *zap.Logger) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes, log: log}
}

// Upload godoc
//
//	@Summary		Upload file
//	@Description	Store a file in object storage under a random key that keeps the original extension and return its public URL. Every failure returns the same generic message.
//	@Tags			common
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"File to upload"
//	@Success		200		{object}	response.Envelope{data=string}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/admin/common/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.log.Warn("upload: no file in request", zap.Error(err))
		metrics.Uploads.WithLabelValues("bad_request").Inc()
		response.BadRequest(w, MsgUploadFailed)
		return
	}
	defer file.Close()

	h.log.Info("upload: received file",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size),
	)

	url, err := h.svc.Upload(r.Context(), File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	})
	if err != nil {
		kind := Kind(err)
		h.log.Error("upload failed",
			zap.String("kind", kind),
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		metrics.Uploads.WithLabelValues(kind).Inc()

		status := http.StatusInternalServerError
		if kind == KindInvalidFilename {
			status = http.StatusBadRequest
		}
		response.Error(w, status, MsgUploadFailed)
		return
	}

	metrics.Uploads.WithLabelValues("ok").Inc()
	response.OK(w, url)
}
