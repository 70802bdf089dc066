package contacts

import (
	"context"

	"github.com/dmitrijs2005/arcaives/internal/models"
)

type Repository interface {
	List(ctx context.Context, q models.Query) ([]models.Contact, error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	GetForUpdate(ctx context.Context, id string) (*models.Contact, error)
	Insert(ctx context.Context, c *models.Contact) error
	Update(ctx context.Context, c *models.Contact) error
	Delete(ctx context.Context, id string) error
}
