// Package memos provides the PostgreSQL repository for memos.
package memos

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

const table = "memos"

var selectColumns = []string{"id", "title", "link", "memo", "tags", "is_secret", "created_at"}

var Columns = repositories.Columns{
	"id":         repositories.UUID,
	"title":      repositories.Text,
	"tags":       repositories.Text,
	"is_secret":  repositories.Bool,
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

func scanMemo(s scanner) (models.Memo, error) {
	var (
		m    models.Memo
		link sql.NullString
	)
	err := s.Scan(&m.ID, &m.Title, &link, &m.Memo, &m.Tags, &m.IsSecret, &m.CreatedAt)
	m.Link = link.String
	return m, err
}

// List returns memos matching q, newest first when q carries no ordering.
func (r *PostgresRepository) List(ctx context.Context, q models.Query) ([]models.Memo, error) {
	b, err := repositories.ApplyQuery(dbx.Psql.Select(selectColumns...).From(table), q, Columns, "created_at DESC")
	if err != nil {
		return nil, err
	}

	items, err := dbx.QueryAll(ctx, r.db, b, func(rows *sql.Rows) (models.Memo, error) {
		return scanMemo(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select memos: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) get(ctx context.Context, id string, lock bool) (*models.Memo, error) {
	b := dbx.Psql.Select(selectColumns...).From(table).Where(sq.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	row, err := dbx.QueryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}

	m, err := scanMemo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &m, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Memo, error) {
	return r.get(ctx, id, false)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Memo, error) {
	return r.get(ctx, id, true)
}

func (r *PostgresRepository) Insert(ctx context.Context, m *models.Memo) error {
	b := dbx.Psql.Insert(table).
		Columns("id", "title", "link", "memo", "tags", "is_secret").
		Values(m.ID, m.Title, repositories.NullString(m.Link), m.Memo, m.Tags, m.IsSecret).
		Suffix("RETURNING created_at")

	row, err := dbx.QueryRow(ctx, r.db, b)
	if err != nil {
		return err
	}
	if err := row.Scan(&m.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, m *models.Memo) error {
	b := dbx.Psql.Update(table).
		Set("title", m.Title).
		Set("link", repositories.NullString(m.Link)).
		Set("memo", m.Memo).
		Set("tags", m.Tags).
		Set("is_secret", m.IsSecret).
		Where(sq.Eq{"id": m.ID})

	return repositories.ExecOne(ctx, r.db, b)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return repositories.ExecOne(ctx, r.db, dbx.Psql.Delete(table).Where(sq.Eq{"id": id}))
}
