// Package blob stores uploaded images in a bucket and resolves their public
// URLs. Two backends exist: S3-compatible object storage and an in-memory
// store served by the gateway itself.
package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Object is a stored blob read back from a Store.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Store is a single bucket.
type Store interface {
	Bucket() string
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	PublicURL(key string) string
	Ping(ctx context.Context) error
}

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// NewKey returns a generated object name under a date prefix. The extension
// of the uploaded file name is kept only when it is short and alphanumeric.
func NewKey(filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("%04d/%02d/%02d/%s%s", now.Year(), now.Month(), now.Day(), uuid.New(), ext)
}

// joinURL appends parts to base, escaping every path segment.
func joinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, p := range parts {
		for _, seg := range strings.Split(strings.Trim(p, "/"), "/") {
			out += "/" + url.PathEscape(seg)
		}
	}
	return out
}
