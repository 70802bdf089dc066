// Package arcaives provides the PostgreSQL repository for archive entries.
package arcaives

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/dbx"
	"github.com/dmitrijs2005/arcaives/internal/models"
	"github.com/dmitrijs2005/arcaives/internal/server/repositories"
)

const table = "arcaives"

var selectColumns = []string{"id", "title", "content", "is_secret", "secret_password", "sort_order", "created_at"}

// Columns lists what callers may filter and order by.
var Columns = repositories.Columns{
	"id":         repositories.UUID,
	"title":      repositories.Text,
	"is_secret":  repositories.Bool,
	"sort_order": repositories.Int,
	"created_at": nil,
}

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (models.ArchiveEntry, error) {
	var (
		e  models.ArchiveEntry
		pw sql.NullString
	)
	err := s.Scan(&e.ID, &e.Title, &e.Content, &e.IsSecret, &pw, &e.SortOrder, &e.CreatedAt)
	e.SecretPassword = pw.String
	return e, err
}

// List returns entries matching q, by sort_order then created_at when q
// carries no ordering.
func (r *PostgresRepository) List(ctx context.Context, q models.Query) ([]models.ArchiveEntry, error) {
	b, err := repositories.ApplyQuery(dbx.Psql.Select(selectColumns...).From(table), q, Columns, "sort_order ASC", "created_at ASC")
	if err != nil {
		return nil, err
	}

	items, err := dbx.QueryAll(ctx, r.db, b, func(rows *sql.Rows) (models.ArchiveEntry, error) {
		return scanEntry(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) get(ctx context.Context, id string, lock bool) (*models.ArchiveEntry, error) {
	b := dbx.Psql.Select(selectColumns...).From(table).Where(sq.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	row, err := dbx.QueryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &e, nil
}

// Get returns the entry with id or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.ArchiveEntry, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate is Get with a row lock; call it inside a transaction.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.ArchiveEntry, error) {
	return r.get(ctx, id, true)
}

// Insert stores e and fills in the creation time assigned by the database.
func (r *PostgresRepository) Insert(ctx context.Context, e *models.ArchiveEntry) error {
	b := dbx.Psql.Insert(table).
		Columns("id", "title", "content", "is_secret", "secret_password", "sort_order").
		Values(e.ID, e.Title, e.Content, e.IsSecret, repositories.NullString(e.SecretPassword), e.SortOrder).
		Suffix("RETURNING created_at")

	row, err := dbx.QueryRow(ctx, r.db, b)
	if err != nil {
		return err
	}
	if err := row.Scan(&e.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the row with e.ID.
func (r *PostgresRepository) Update(ctx context.Context, e *models.ArchiveEntry) error {
	b := dbx.Psql.Update(table).
		Set("title", e.Title).
		Set("content", e.Content).
		Set("is_secret", e.IsSecret).
		Set("secret_password", repositories.NullString(e.SecretPassword)).
		Set("sort_order", e.SortOrder).
		Where(sq.Eq{"id": e.ID})

	return repositories.ExecOne(ctx, r.db, b)
}

// Delete removes the row with id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return repositories.ExecOne(ctx, r.db, dbx.Psql.Delete(table).Where(sq.Eq{"id": id}))
}
