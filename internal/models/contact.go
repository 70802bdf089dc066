package models

import "time"

// Contact is one shortcut tile on the landing page.
type Contact struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactPatch struct {
	ImageURL  *string `json:"image_url,omitempty"`
	LinkURL   *string `json:"link_url,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (p ContactPatch) Apply(c *Contact) {
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
	if p.LinkURL != nil {
		c.LinkURL = *p.LinkURL
	}
	if p.SortOrder != nil {
		c.SortOrder = *p.SortOrder
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}
