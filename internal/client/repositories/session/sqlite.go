package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/dmitrijs2005/arcaives/internal/dbx"
)

const table = "session"

// sqlite takes squirrel's default "?" placeholders.
var builder = sq.StatementBuilder

// SQLiteRepository keeps session values in the migrated session table.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	row, err := dbx.QueryRow(ctx, r.db, builder.Select("value").From(table).Where(sq.Eq{"key": key}))
	if err != nil {
		return nil, fmt.Errorf("session get %q: %w", key, err)
	}

	var value []byte
	switch err := row.Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("session get %q: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	b := builder.Insert(table).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at")

	if _, err := dbx.Exec(ctx, r.db, b); err != nil {
		return fmt.Errorf("session set %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := dbx.Exec(ctx, r.db, builder.Delete(table).Where(sq.Eq{"key": key})); err != nil {
		return fmt.Errorf("session delete %q: %w", key, err)
	}
	return nil
}
