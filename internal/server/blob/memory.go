package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/arcaives/internal/common"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore keeps blobs in memory. It is safe for concurrent use; blobs
// are lost on restart.
type MemoryStore struct {
	bucket  string
	baseURL string
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStore creates a bucket whose public URLs are served under
// baseURL + "/storage/v1/object/public/<bucket>/".
func NewMemoryStore(bucket, baseURL string) *MemoryStore {
	return &MemoryStore{bucket: bucket, baseURL: baseURL, objects: make(map[string]memoryObject)}
}

func (m *MemoryStore) Bucket() string { return m.bucket }

func (m *MemoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	if size >= 0 && int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &Object{
		Body:        io.NopCloser(bytes.NewReader(o.data)),
		ContentType: o.contentType,
		Size:        int64(len(o.data)),
	}, nil
}

func (m *MemoryStore) PublicURL(key string) string {
	return joinURL(m.baseURL, "storage/v1/object/public", m.bucket, key)
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

// Len reports the number of stored blobs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
