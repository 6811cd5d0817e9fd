// Package blobstore defines the byte-storage collaborator entry images live
// in: put-with-content-type and capped reads, addressed by path.
package blobstore

import "context"

// Store is the blob-store contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put writes data under path, tagged with the given content type.
	// Paths look like "users/{userId}/entryImages/{name}.jpg".
	Put(ctx context.Context, path string, data []byte, contentType string) error

	// Get reads the blob at path. If the object is larger than maxSize
	// bytes it returns common.ErrorBlobTooLarge; a missing object returns
	// common.ErrorNotFound.
	Get(ctx context.Context, path string, maxSize int64) ([]byte, error)
}
