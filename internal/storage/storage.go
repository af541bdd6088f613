// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO, AWS S3, Cloudflare R2).
package storage

import (
	"context"
	"io"
)

// ObjectStore is the interface for writing and addressing stored objects.
type ObjectStore interface {
	// Put streams data to the store under the given key and returns nothing
	// until the write is durably acknowledged by the backend.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
