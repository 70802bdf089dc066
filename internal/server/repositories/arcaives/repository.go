package arcaives

import (
	"context"

	"github.com/dmitrijs2005/arcaives/internal/models"
)

type Repository interface {
	List(ctx context.Context, q models.Query) ([]models.ArchiveEntry, error)
	Get(ctx context.Context, id string) (*models.ArchiveEntry, error)
	GetForUpdate(ctx context.Context, id string) (*models.ArchiveEntry, error)
	Insert(ctx context.Context, e *models.ArchiveEntry) error
	Update(ctx context.Context, e *models.ArchiveEntry) error
	Delete(ctx context.Context, id string) error
}
