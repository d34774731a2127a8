// Package storage persists uploaded files, primarily review images.
// The only backend is the local filesystem, served back through the
// static file route.
package storage

import (
	"context"
	"io"
)

// Storage stores and serves uploaded files.
type Storage interface {
	// Put stores a file under key (e.g. "reviews/uuid.jpg") and returns
	// its public URL.
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Get retrieves a file by its key.
	// Returns an io.ReadCloser that must be closed by the caller.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by its key.
	// Returns nil if the file doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for a stored file.
	URL(key string) string

	// Exists checks if a file exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}
