package blob

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/arcaives/internal/server/config"
)

// NewFromConfig creates the Store selected by cfg.BlobBackend. selfURL is the
// gateway's own base URL, used by the memory backend for public links.
func NewFromConfig(ctx context.Context, cfg *config.Config, selfURL string) (Store, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendMemory:
		base := cfg.PublicBaseURL
		if base == "" {
			base = selfURL
		}
		return NewMemoryStore(cfg.S3Bucket, base), nil
	case config.BlobBackendS3:
		s, err := NewS3Store(ctx, S3Settings{
			User:          cfg.S3RootUser,
			Password:      cfg.S3RootPassword,
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			BaseEndpoint:  cfg.S3BaseEndpoint,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown blob backend: %s", cfg.BlobBackend)
	}
}
