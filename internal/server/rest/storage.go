package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/logging"
	"github.com/dmitrijs2005/arcaives/internal/models"
	"github.com/dmitrijs2005/arcaives/internal/server/blob"
)

// multipartSlack covers boundaries and part headers on top of the file itself.
const multipartSlack = 64 << 10

type uploadService interface {
	Upload(ctx context.Context, bucket, filename string, r io.Reader) (*models.StoredObject, error)
	Open(ctx context.Context, bucket, key string) (*blob.Object, error)
	MaxBytes() int64
}

// StorageHandler serves bucket uploads and public blob reads.
type StorageHandler struct {
	svc uploadService
	log logging.Logger
}

func NewStorageHandler(svc uploadService, logger logging.Logger) *StorageHandler {
	return &StorageHandler{svc: svc, log: logger}
}

// Upload handles POST /storage/v1/object/{bucket} with a multipart "file" part.
func (h *StorageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.svc.MaxBytes()+multipartSlack)

	file, header, err := r.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			handleError(h.log, w, r, common.ErrPayloadTooLarge)
			return
		}
		handleError(h.log, w, r, common.NewValidationError("file", "multipart part required"))
		return
	}
	defer file.Close()

	obj, err := h.svc.Upload(r.Context(), r.PathValue("bucket"), header.Filename, file)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, obj)
}

// Public handles GET /storage/v1/object/public/{bucket}/{key...}.
func (h *StorageHandler) Public(w http.ResponseWriter, r *http.Request) {
	obj, err := h.svc.Open(r.Context(), r.PathValue("bucket"), r.PathValue("key"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.log.Warn(r.Context(), "blob write interrupted", "key", r.PathValue("key"), "error", err)
	}
}
