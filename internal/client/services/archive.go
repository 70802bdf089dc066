package services

import (
	"context"

	"github.com/dmitrijs2005/arcaives/internal/gate"
	"github.com/dmitrijs2005/arcaives/internal/models"
)

// Detail is an archive entry as the detail view may show it. Entry carries
// the raw row; only View.Content is meant for display.
type Detail struct {
	Entry models.ArchiveEntry
	View  gate.View
}

type ArchiveService struct {
	arcaives ArcaiveTable
}

func NewArchiveService(a ArcaiveTable) *ArchiveService {
	return &ArchiveService{arcaives: a}
}

// List returns every entry by sort order. Hard-locked entries are listed but
// not clickable.
func (s *ArchiveService) List(ctx context.Context) ([]gate.Item, error) {
	entries, err := s.arcaives.List(ctx, byShelfOrder)
	if err != nil {
		return nil, err
	}
	return gate.Listing(entries, gate.InertHardLocked), nil
}

// Open runs the list-context challenge for item. Public entries need no
// input and yield a nil marker; inert items yield gate.ErrHardLocked.
func (s *ArchiveService) Open(item gate.Item, input string) (*gate.Unlock, error) {
	if !item.Clickable {
		return nil, gate.ErrHardLocked
	}
	if item.Lock == gate.LockNone {
		return nil, nil
	}
	return gate.SubmitFromList(item.Entry, input)
}

// Detail loads one entry and evaluates it against the session and an
// optional unlock marker carried from the list. A missing entry matches
// common.ErrorNotFound.
func (s *ArchiveService) Detail(ctx context.Context, sess gate.Session, id string, marker *gate.Unlock) (gate.Session, *Detail, error) {
	e, err := s.arcaives.Get(ctx, id)
	if err != nil {
		return sess, nil, err
	}
	sess, view := gate.Arrive(sess, *e, marker)
	return sess, &Detail{Entry: *e, View: view}, nil
}

// Unlock runs the detail-context challenge. On mismatch the session and view
// are unchanged and gate.ErrIncorrectPassword is returned.
func (s *ArchiveService) Unlock(sess gate.Session, d *Detail, input string) (gate.Session, *Detail, error) {
	sess, view, err := gate.SubmitOnDetail(sess, d.Entry, input)
	return sess, &Detail{Entry: d.Entry, View: view}, err
}
