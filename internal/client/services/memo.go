package services

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/arcaives/internal/gate"
	"github.com/dmitrijs2005/arcaives/internal/models"
)

// AllTags selects every visible memo.
const AllTags = "ALL"

// MemoPage is the public memo list filtered by one category.
type MemoPage struct {
	Tags     []string
	Selected string
	Memos    []models.Memo
	Hidden   int
}

type MemoService struct {
	memos MemoTable
}

func NewMemoService(m MemoTable) *MemoService {
	return &MemoService{memos: m}
}

// Page loads all memos newest first. Secret memos only count toward Hidden.
// An unknown or empty tag selects AllTags.
func (s *MemoService) Page(ctx context.Context, tag string) (*MemoPage, error) {
	memos, err := s.memos.List(ctx, newestFirst)
	if err != nil {
		return nil, err
	}

	visible, hidden := gate.PublicMemos(memos)
	tags := categories(visible)

	if tag == "" || !contains(tags, tag) {
		tag = AllTags
	}

	p := &MemoPage{Tags: tags, Selected: tag, Hidden: hidden, Memos: make([]models.Memo, 0, len(visible))}
	for _, m := range visible {
		if tag == AllTags || m.Category() == tag {
			p.Memos = append(p.Memos, m)
		}
	}
	return p, nil
}

func categories(memos []models.Memo) []string {
	seen := map[string]struct{}{}
	for _, m := range memos {
		if c := m.Category(); c != "" {
			seen[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return append([]string{AllTags}, out...)
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
