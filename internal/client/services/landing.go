package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/arcaives/internal/gate"
	"github.com/dmitrijs2005/arcaives/internal/models"
)

const (
	memoPreviewLimit = 6
	memoPreviewTags  = 3
	contactSlots     = 5
)

// MemoPreview is a memo on the landing page with its first few tags.
type MemoPreview struct {
	Memo models.Memo
	Tags []string
}

// Tile is one shortcut slot. Contact is nil for an empty slot.
type Tile struct {
	Contact *models.Contact
}

// Home is the landing page. Sections that failed to load are empty and their
// errors are reported together by LandingService.Home.
type Home struct {
	TopShelf    []gate.Item
	BottomShelf []gate.Item
	Memos       []MemoPreview
	Tiles       []Tile
}

type LandingService struct {
	arcaives ArcaiveTable
	memos    MemoTable
	contacts ContactTable
}

func NewLandingService(a ArcaiveTable, m MemoTable, c ContactTable) *LandingService {
	return &LandingService{arcaives: a, memos: m, contacts: c}
}

// Home loads the three landing sections independently.
func (s *LandingService) Home(ctx context.Context) (*Home, error) {
	h := &Home{Tiles: make([]Tile, contactSlots)}
	var errs []error

	if entries, err := s.arcaives.List(ctx, byShelfOrder); err != nil {
		errs = append(errs, fmt.Errorf("arcaives: %w", err))
	} else {
		h.TopShelf, h.BottomShelf = SplitShelf(gate.Listing(entries, gate.ExcludeHardLocked))
	}

	q := newestFirst.Eq("is_secret", strconv.FormatBool(false)).WithLimit(memoPreviewLimit)
	if memos, err := s.memos.List(ctx, q); err != nil {
		errs = append(errs, fmt.Errorf("memos: %w", err))
	} else {
		visible, _ := gate.PublicMemos(memos)
		for _, m := range visible {
			tags := m.TagList()
			if len(tags) > memoPreviewTags {
				tags = tags[:memoPreviewTags]
			}
			h.Memos = append(h.Memos, MemoPreview{Memo: m, Tags: tags})
		}
	}

	q = byShelfOrder.Eq("is_active", strconv.FormatBool(true)).WithLimit(contactSlots)
	if contacts, err := s.contacts.List(ctx, q); err != nil {
		errs = append(errs, fmt.Errorf("contacts: %w", err))
	} else {
		i := 0
		for _, c := range contacts {
			if !c.IsActive || i == contactSlots {
				continue
			}
			h.Tiles[i] = Tile{Contact: &c}
			i++
		}
	}

	return h, errors.Join(errs...)
}

// SplitShelf puts the first ceil(n/2) items on the top shelf.
func SplitShelf(items []gate.Item) (top, bottom []gate.Item) {
	half := (len(items) + 1) / 2
	return items[:half], items[half:]
}
