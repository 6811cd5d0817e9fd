package blobstore

import (
	"context"
	"sync"

	"github.com/firejournal/firejournal/internal/common"
)

type blob struct {
	data        []byte
	contentType string
}

// InMemoryStore is a map-backed Store used by tests and offline runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{blobs: make(map[string]blob)}
}

func (s *InMemoryStore) Put(_ context.Context, path string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[path] = blob{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, path string, maxSize int64) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if int64(len(b.data)) > maxSize {
		return nil, common.ErrorBlobTooLarge
	}
	return append([]byte(nil), b.data...), nil
}

// Exists reports whether a blob is stored under path.
func (s *InMemoryStore) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.blobs[path]
	return ok
}

// ContentType returns the stored content type for path, or "".
func (s *InMemoryStore) ContentType(path string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.blobs[path].contentType
}

// Len returns the number of stored blobs.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.blobs)
}
