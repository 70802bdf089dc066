package models

import "time"

// ArchiveEntry is one long-form archive row. SecretPassword is meaningful
// only while IsSecret is set.
type ArchiveEntry struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	IsSecret       bool      `json:"is_secret"`
	SecretPassword string    `json:"secret_password"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
}

// Normalize clears the password of a public entry.
func (e *ArchiveEntry) Normalize() {
	if !e.IsSecret {
		e.SecretPassword = ""
	}
}

// ArchiveEntryPatch carries a partial update; nil fields are left unchanged.
type ArchiveEntryPatch struct {
	Title          *string `json:"title,omitempty"`
	Content        *string `json:"content,omitempty"`
	IsSecret       *bool   `json:"is_secret,omitempty"`
	SecretPassword *string `json:"secret_password,omitempty"`
	SortOrder      *int    `json:"sort_order,omitempty"`
}

// Apply merges p into e and re-normalizes the result.
func (p ArchiveEntryPatch) Apply(e *ArchiveEntry) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.IsSecret != nil {
		e.IsSecret = *p.IsSecret
	}
	if p.SecretPassword != nil {
		e.SecretPassword = *p.SecretPassword
	}
	if p.SortOrder != nil {
		e.SortOrder = *p.SortOrder
	}
	e.Normalize()
}
