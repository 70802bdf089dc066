package memos

import (
	"context"

	"github.com/dmitrijs2005/arcaives/internal/models"
)

type Repository interface {
	List(ctx context.Context, q models.Query) ([]models.Memo, error)
	Get(ctx context.Context, id string) (*models.Memo, error)
	GetForUpdate(ctx context.Context, id string) (*models.Memo, error)
	Insert(ctx context.Context, m *models.Memo) error
	Update(ctx context.Context, m *models.Memo) error
	Delete(ctx context.Context, id string) error
}
