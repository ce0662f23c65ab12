package storage

import (
	"context"
	"io"
)

// Store defines the interface for binary object storage.
type Store interface {
	// Save writes content under the given relative path, creating parent
	// directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the object at the given relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at the given relative path.
	// Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
