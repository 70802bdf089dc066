package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/logging"
	"github.com/dmitrijs2005/arcaives/internal/models"
	"github.com/dmitrijs2005/arcaives/internal/server/blob"
)

// UploadService accepts image uploads for the configured bucket.
type UploadService struct {
	store    blob.Store
	maxBytes int64
	logger   logging.Logger
	now      func() time.Time
}

func NewUploadService(store blob.Store, maxBytes int64, logger logging.Logger) *UploadService {
	return &UploadService{store: store, maxBytes: maxBytes, logger: logger, now: time.Now}
}

// MaxBytes is the upload ceiling.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Upload stores an image under a generated name. Content larger than the
// ceiling yields common.ErrPayloadTooLarge; content that does not sniff as
// an image yields common.ErrUnsupportedMediaType.
func (s *UploadService) Upload(ctx context.Context, bucket, filename string, r io.Reader) (*models.StoredObject, error) {
	if bucket != s.store.Bucket() {
		return nil, common.ErrorNotFound
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, common.ErrPayloadTooLarge
	}
	if len(data) == 0 {
		return nil, common.NewValidationError("file", "empty")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedMediaType, contentType)
	}

	key := blob.NewKey(filename, s.now())
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, err
	}

	obj := &models.StoredObject{
		Bucket:      bucket,
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		PublicURL:   s.store.PublicURL(key),
	}
	s.logger.Info(ctx, "blob stored", "bucket", bucket, "key", key, "size", obj.Size, "content_type", contentType)
	return obj, nil
}

// Open returns a stored blob for serving.
func (s *UploadService) Open(ctx context.Context, bucket, key string) (*blob.Object, error) {
	if bucket != s.store.Bucket() || key == "" {
		return nil, common.ErrorNotFound
	}
	return s.store.Get(ctx, key)
}

// Ping checks the bucket.
func (s *UploadService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
