// Package services contains the gateway's table and storage logic. Table
// services apply the row invariants the gateway does enforce (non-blank
// titles, no password on public entries); they never filter rows by secrecy.
package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/dbx"
	"github.com/dmitrijs2005/arcaives/internal/models"
	"github.com/dmitrijs2005/arcaives/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Repository is the per-table storage contract shared by every table.
type Repository[T any] interface {
	List(ctx context.Context, q models.Query) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	GetForUpdate(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, row *T) error
	Update(ctx context.Context, row *T) error
	Delete(ctx context.Context, id string) error
}

// TableService serves one table. T is the row type, P its partial-update type.
type TableService[T any, P any] struct {
	db      *sql.DB
	repo    func(dbx.DBTX) Repository[T]
	setID   func(*T, string)
	apply   func(P, *T)
	prepare func(*T) error
}

// List returns the rows selected by q.
func (s *TableService[T, P]) List(ctx context.Context, q models.Query) ([]T, error) {
	return s.repo(s.db).List(ctx, q)
}

// Get returns one row or common.ErrorNotFound.
func (s *TableService[T, P]) Get(ctx context.Context, id string) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repo(s.db).Get(ctx, id)
}

// Create validates row, assigns a fresh id and stores it.
func (s *TableService[T, P]) Create(ctx context.Context, row T) (*T, error) {
	if err := s.prepare(&row); err != nil {
		return nil, err
	}
	s.setID(&row, uuid.NewString())
	if err := s.repo(s.db).Insert(ctx, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// Update merges p into the stored row inside a transaction. Concurrent
// writers are serialized by the row lock; the last one wins.
func (s *TableService[T, P]) Update(ctx context.Context, id string, p P) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	var out *T
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		row, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		s.apply(p, row)
		if err := s.prepare(row); err != nil {
			return err
		}
		if err := repo.Update(ctx, row); err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one row.
func (s *TableService[T, P]) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	return s.repo(s.db).Delete(ctx, id)
}

func requireTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return common.NewValidationError("title", "required")
	}
	return nil
}

// ArcaiveService serves archive entries.
type ArcaiveService = TableService[models.ArchiveEntry, models.ArchiveEntryPatch]

func NewArcaiveService(db *sql.DB, m repomanager.RepositoryManager) *ArcaiveService {
	return &ArcaiveService{
		db:    db,
		repo:  func(db dbx.DBTX) Repository[models.ArchiveEntry] { return m.Arcaives(db) },
		setID: func(e *models.ArchiveEntry, id string) { e.ID = id },
		apply: func(p models.ArchiveEntryPatch, e *models.ArchiveEntry) { p.Apply(e) },
		prepare: func(e *models.ArchiveEntry) error {
			e.Normalize()
			return requireTitle(e.Title)
		},
	}
}

// MemoService serves memos.
type MemoService = TableService[models.Memo, models.MemoPatch]

func NewMemoService(db *sql.DB, m repomanager.RepositoryManager) *MemoService {
	return &MemoService{
		db:    db,
		repo:  func(db dbx.DBTX) Repository[models.Memo] { return m.Memos(db) },
		setID: func(r *models.Memo, id string) { r.ID = id },
		apply: func(p models.MemoPatch, r *models.Memo) { p.Apply(r) },
		prepare: func(r *models.Memo) error {
			return requireTitle(r.Title)
		},
	}
}

// ContactService serves shortcut tiles. Contacts have no required fields.
type ContactService = TableService[models.Contact, models.ContactPatch]

func NewContactService(db *sql.DB, m repomanager.RepositoryManager) *ContactService {
	return &ContactService{
		db:      db,
		repo:    func(db dbx.DBTX) Repository[models.Contact] { return m.Contacts(db) },
		setID:   func(r *models.Contact, id string) { r.ID = id },
		apply:   func(p models.ContactPatch, r *models.Contact) { p.Apply(r) },
		prepare: func(*models.Contact) error { return nil },
	}
}
