package models

import (
	"strings"
	"time"
)

// Memo is a short tagged note. Tags is a comma-separated list whose first
// element is the memo's category.
type Memo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Memo      string    `json:"memo"`
	Tags      string    `json:"tags"`
	IsSecret  bool      `json:"is_secret"`
	CreatedAt time.Time `json:"created_at"`
}

// TagList splits Tags on commas, trimming blanks and dropping empty items.
func (m Memo) TagList() []string {
	if m.Tags == "" {
		return nil
	}
	parts := strings.Split(m.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Category is the trimmed text before the first comma of Tags.
func (m Memo) Category() string {
	first, _, _ := strings.Cut(m.Tags, ",")
	return strings.TrimSpace(first)
}

type MemoPatch struct {
	Title    *string `json:"title,omitempty"`
	Link     *string `json:"link,omitempty"`
	Memo     *string `json:"memo,omitempty"`
	Tags     *string `json:"tags,omitempty"`
	IsSecret *bool   `json:"is_secret,omitempty"`
}

func (p MemoPatch) Apply(m *Memo) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Link != nil {
		m.Link = *p.Link
	}
	if p.Memo != nil {
		m.Memo = *p.Memo
	}
	if p.Tags != nil {
		m.Tags = *p.Tags
	}
	if p.IsSecret != nil {
		m.IsSecret = *p.IsSecret
	}
}
