package models

// StoredObject describes a blob written to the bucket.
type StoredObject struct {
	Bucket      string `json:"bucket"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	PublicURL   string `json:"public_url"`
}
