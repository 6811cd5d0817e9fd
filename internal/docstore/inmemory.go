package docstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/firejournal/firejournal/internal/common"
	"github.com/firejournal/firejournal/internal/journal"
)

// InMemoryStore keeps each user's entries in insertion order and pushes a
// fresh snapshot to every watcher after each mutation. It backs tests and
// offline runs.
type InMemoryStore struct {
	mu       sync.RWMutex
	entries  map[string][]journal.Entry // userID -> entries, insertion order
	watchers map[string][]chan []journal.Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries:  make(map[string][]journal.Entry),
		watchers: make(map[string][]chan []journal.Entry),
	}
}

func (s *InMemoryStore) Create(_ context.Context, entry journal.Entry) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry.ID = uuid.NewString()
	entry.CreatedAt = &now
	s.entries[entry.UserID] = append(s.entries[entry.UserID], entry)

	s.notifyLocked(entry.UserID)
	return entry, nil
}

func (s *InMemoryStore) Merge(_ context.Context, userID, id string, patch journal.EntryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[userID]
	for i := range list {
		if list[i].ID != id {
			continue
		}
		applyPatch(&list[i], patch)
		s.notifyLocked(userID)
		return nil
	}
	return common.ErrorNotFound
}

func (s *InMemoryStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[userID]
	for i := range list {
		if list[i].ID == id {
			s.entries[userID] = append(list[:i:i], list[i+1:]...)
			s.notifyLocked(userID)
			return nil
		}
	}
	// Idempotent: unknown ids are not an error.
	return nil
}

func (s *InMemoryStore) List(_ context.Context, userID string) ([]journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return snapshotLocked(s.entries[userID]), nil
}

func (s *InMemoryStore) Watch(ctx context.Context, userID string) (<-chan []journal.Entry, error) {
	s.mu.Lock()
	ch := make(chan []journal.Entry, 16)
	s.watchers[userID] = append(s.watchers[userID], ch)
	ch <- snapshotLocked(s.entries[userID])
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		list := s.watchers[userID]
		for i, w := range list {
			if w == ch {
				s.watchers[userID] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		close(ch)
	}()

	return ch, nil
}

func (s *InMemoryStore) notifyLocked(userID string) {
	snap := snapshotLocked(s.entries[userID])
	for _, ch := range s.watchers[userID] {
		select {
		case ch <- snap:
		default:
			// Slow watcher: drop this snapshot, the next one supersedes it.
		}
	}
}

func snapshotLocked(list []journal.Entry) []journal.Entry {
	out := make([]journal.Entry, len(list))
	copy(out, list)
	return out
}

func applyPatch(e *journal.Entry, p journal.EntryPatch) {
	if p.Caption != nil {
		e.Caption = *p.Caption
	}
	if p.IsFavorite != nil {
		e.IsFavorite = *p.IsFavorite
	}
	if p.UserTags != nil {
		e.UserTags = append([]string(nil), (*p.UserTags)...)
	}
	if p.AutoTags != nil {
		e.AutoTags = append([]string(nil), (*p.AutoTags)...)
	}
	if p.MetadataTimestamp != nil {
		ts := *p.MetadataTimestamp
		e.MetadataTimestamp = &ts
	}
	if p.MetadataLatitude != nil {
		lat := *p.MetadataLatitude
		e.MetadataLatitude = &lat
	}
	if p.MetadataLongitude != nil {
		lon := *p.MetadataLongitude
		e.MetadataLongitude = &lon
	}
	if p.ImagePath != nil {
		path := *p.ImagePath
		e.ImagePath = &path
	}
}
