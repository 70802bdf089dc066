// Package session stores the site client's per-run session values, such as
// the admin flag, in sqlite.
package session

import "context"

// Repository is a small key/value store. Get returns (nil, nil) for an
// absent key; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
