// Package storage keeps documents' attached files in object storage and
// hands out short-lived pre-signed download links instead of proxying bytes.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// DefaultURLTTL is how long a download link stays valid.
const DefaultURLTTL = 900 * time.Second

var (
	// ErrObjectNotFound is returned when a key has no stored object.
	ErrObjectNotFound = errors.New("storage: object not found")
	// ErrLinkExpired is returned when a download link is past its expiry.
	ErrLinkExpired = errors.New("storage: link expired")
)

// FileStore stores objects and signs download links for them.
type FileStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
