package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/arcaives/internal/models"
)

// Table is typed access to one gateway table. T is the row type, P its
// partial-update type.
type Table[T any, P any] struct {
	c    *Client
	name string
}

func NewTable[T any, P any](c *Client, name string) *Table[T, P] {
	return &Table[T, P]{c: c, name: name}
}

func (t *Table[T, P]) path() string { return "/rest/v1/" + t.name }

func (t *Table[T, P]) rowPath(id string) string { return t.path() + "/" + url.PathEscape(id) }

// List runs an ordered select.
func (t *Table[T, P]) List(ctx context.Context, q models.Query) ([]T, error) {
	var rows []T
	if err := t.c.do(ctx, http.MethodGet, t.path(), q.Values(), nil, "", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Get selects one row; a missing row matches common.ErrorNotFound.
func (t *Table[T, P]) Get(ctx context.Context, id string) (*T, error) {
	var row T
	if err := t.c.do(ctx, http.MethodGet, t.rowPath(id), nil, nil, "", &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// Insert stores row and returns it as stored.
func (t *Table[T, P]) Insert(ctx context.Context, row T) (*T, error) {
	var out T
	if err := t.c.doJSON(ctx, http.MethodPost, t.path(), row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies p to the row with id.
func (t *Table[T, P]) Update(ctx context.Context, id string, p P) (*T, error) {
	var out T
	if err := t.c.doJSON(ctx, http.MethodPatch, t.rowPath(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the row with id.
func (t *Table[T, P]) Delete(ctx context.Context, id string) error {
	return t.c.doJSON(ctx, http.MethodDelete, t.rowPath(id), nil, nil)
}

type (
	ArcaivesTable = Table[models.ArchiveEntry, models.ArchiveEntryPatch]
	MemosTable    = Table[models.Memo, models.MemoPatch]
	ContactsTable = Table[models.Contact, models.ContactPatch]
)

func (c *Client) Arcaives() *ArcaivesTable { return NewTable[models.ArchiveEntry, models.ArchiveEntryPatch](c, models.TableArcaives) }
func (c *Client) Memos() *MemosTable       { return NewTable[models.Memo, models.MemoPatch](c, models.TableMemos) }
func (c *Client) Contacts() *ContactsTable { return NewTable[models.Contact, models.ContactPatch](c, models.TableContacts) }
