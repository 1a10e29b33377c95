package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"
)

// Object is a file held by MemoryStore.
type Object struct {
	ContentType string
	Data        []byte
}

// MemoryStore is an in-process FileStore for local development and tests.
// Its links point at baseURL and carry the expiry as a query parameter.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]Object
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{baseURL: baseURL, objects: make(map[string]Object), now: time.Now}
}

// Put stores body under key.
func (m *MemoryStore) Put(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{ContentType: contentType, Data: data}
	return nil
}

// PresignGet returns a link for key expiring after ttl.
func (m *MemoryStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrObjectNotFound
	}

	q := url.Values{}
	q.Set("expires", m.now().Add(ttl).UTC().Format(time.RFC3339))
	return fmt.Sprintf("%s/%s?%s", m.baseURL, url.PathEscape(key), q.Encode()), nil
}

// Open resolves a link produced by PresignGet. expires is the link's
// expires query parameter.
func (m *MemoryStore) Open(key, expires string) (Object, error) {
	deadline, err := time.Parse(time.RFC3339, expires)
	if err != nil || m.now().After(deadline) {
		return Object{}, ErrLinkExpired
	}
	obj, ok := m.Get(key)
	if !ok {
		return Object{}, ErrObjectNotFound
	}
	return obj, nil
}

// Get returns the object stored under key.
func (m *MemoryStore) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}
