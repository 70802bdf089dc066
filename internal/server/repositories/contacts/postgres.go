// Package contacts provides the PostgreSQL repository for shortcut tiles.
package contacts

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

const table = "contacts"

var selectColumns = []string{"id", "image_url", "link_url", "sort_order", "is_active", "created_at"}

var Columns = repositories.Columns{
	"id":         repositories.UUID,
	"is_active":  repositories.Bool,
	"sort_order": repositories.Int,
	"created_at": nil,
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner) (models.Contact, error) {
	var (
		c             models.Contact
		image, target sql.NullString
	)
	err := s.Scan(&c.ID, &image, &target, &c.SortOrder, &c.IsActive, &c.CreatedAt)
	c.ImageURL = image.String
	c.LinkURL = target.String
	return c, err
}

// List returns contacts matching q, by sort_order when q carries no ordering.
func (r *PostgresRepository) List(ctx context.Context, q models.Query) ([]models.Contact, error) {
	b, err := repositories.ApplyQuery(dbx.Psql.Select(selectColumns...).From(table), q, Columns, "sort_order ASC", "created_at ASC")
	if err != nil {
		return nil, err
	}

	items, err := dbx.QueryAll(ctx, r.db, b, func(rows *sql.Rows) (models.Contact, error) {
		return scanContact(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select contacts: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) get(ctx context.Context, id string, lock bool) (*models.Contact, error) {
	b := dbx.Psql.Select(selectColumns...).From(table).Where(sq.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	row, err := dbx.QueryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}

	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Contact, error) {
	return r.get(ctx, id, false)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Contact, error) {
	return r.get(ctx, id, true)
}

func (r *PostgresRepository) Insert(ctx context.Context, c *models.Contact) error {
	b := dbx.Psql.Insert(table).
		Columns("id", "image_url", "link_url", "sort_order", "is_active").
		Values(c.ID, repositories.NullString(c.ImageURL), repositories.NullString(c.LinkURL), c.SortOrder, c.IsActive).
		Suffix("RETURNING created_at")

	row, err := dbx.QueryRow(ctx, r.db, b)
	if err != nil {
		return err
	}
	if err := row.Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Contact) error {
	b := dbx.Psql.Update(table).
		Set("image_url", repositories.NullString(c.ImageURL)).
		Set("link_url", repositories.NullString(c.LinkURL)).
		Set("sort_order", c.SortOrder).
		Set("is_active", c.IsActive).
		Where(sq.Eq{"id": c.ID})

	return repositories.ExecOne(ctx, r.db, b)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return repositories.ExecOne(ctx, r.db, dbx.Psql.Delete(table).Where(sq.Eq{"id": id}))
}
