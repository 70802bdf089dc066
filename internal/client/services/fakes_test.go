package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/arcaives/internal/client/repositories/session"
	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/models"
	"github.com/stretchr/testify/require"
)

// fakeTable records queries and serves fixed rows.
type fakeTable[T any, P any] struct {
	rows    []T
	byID    map[string]T
	queries []models.Query
	listErr error

	inserted []T
	updates  map[string]P
	updated  *T
	updErr   error
	deleted  []string
}

func (f *fakeTable[T, P]) List(ctx context.Context, q models.Query) ([]T, error) {
	f.queries = append(f.queries, q)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeTable[T, P]) Get(ctx context.Context, id string) (*T, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &r, nil
}

func (f *fakeTable[T, P]) Insert(ctx context.Context, row T) (*T, error) {
	f.inserted = append(f.inserted, row)
	return &row, nil
}

func (f *fakeTable[T, P]) Update(ctx context.Context, id string, p P) (*T, error) {
	if f.updErr != nil {
		return nil, f.updErr
	}
	if f.updates == nil {
		f.updates = map[string]P{}
	}
	f.updates[id] = p
	if f.updated != nil {
		return f.updated, nil
	}
	var zero T
	return &zero, nil
}

func (f *fakeTable[T, P]) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUploader struct {
	calls int
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, bucket, filename string, data []byte) (*models.StoredObject, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.StoredObject{Bucket: bucket, Key: "k/" + filename, PublicURL: "http://gw/public/" + bucket + "/k/" + filename}, nil
}

func newSessionStore(t *testing.T) session.Repository {
	t.Helper()
	db, err := session.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewSQLiteRepository(db)
}

var errGatewayDown = errors.New("gateway unavailable: dial tcp: refused")
