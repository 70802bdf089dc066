package services

import (
	"context"

	"github.com/dmitrijs2005/arcaives/internal/models"
)

// Table is the gateway access a service needs for one table.
type Table[T any, P any] interface {
	List(ctx context.Context, q models.Query) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, row T) (*T, error)
	Update(ctx context.Context, id string, p P) (*T, error)
	Delete(ctx context.Context, id string) error
}

type (
	ArcaiveTable = Table[models.ArchiveEntry, models.ArchiveEntryPatch]
	MemoTable    = Table[models.Memo, models.MemoPatch]
	ContactTable = Table[models.Contact, models.ContactPatch]
)

// Uploader stores a blob in a gateway bucket.
type Uploader interface {
	Upload(ctx context.Context, bucket, filename string, data []byte) (*models.StoredObject, error)
}

var (
	byShelfOrder = models.Query{}.OrderBy("sort_order", false).OrderBy("created_at", false)
	newestFirst  = models.Query{}.OrderBy("created_at", true)
)
