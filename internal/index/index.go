// Package index maintains a query-side, in-memory view of the live entry
// set and filters it by case-insensitive substring search.
package index

import (
	"context"
	"strings"
	"sync"

	"github.com/firejournal/firejournal/internal/journal"
	"github.com/firejournal/firejournal/internal/logging"
)

// dateLayout is the display format entries' creation dates are matched
// against: medium date style, month day, year.
const dateLayout = "Jan 2, 2006"

// Filter returns the entries matching query. The match is a case-insensitive
// substring test against the caption, the display-formatted creation date,
// and every user and auto tag. An empty query returns entries unchanged, in
// their given order. Filter never mutates its input.
func Filter(entries []journal.Entry, query string) []journal.Entry {
	if query == "" {
		return entries
	}
	lower := strings.ToLower(query)

	var out []journal.Entry
	for _, e := range entries {
		if matches(e, lower) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e journal.Entry, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(e.Caption), lowerQuery) {
		return true
	}
	if e.CreatedAt != nil {
		date := strings.ToLower(e.CreatedAt.Format(dateLayout))
		if strings.Contains(date, lowerQuery) {
			return true
		}
	}
	for _, t := range e.UserTags {
		if strings.Contains(strings.ToLower(t), lowerQuery) {
			return true
		}
	}
	for _, t := range e.AutoTags {
		if strings.Contains(strings.ToLower(t), lowerQuery) {
			return true
		}
	}
	return false
}

// Index holds the current entry snapshot and answers searches over it.
// It is fed by a docstore.Watch subscription; each snapshot replaces the
// previous one wholesale and recomputation is synchronous.
type Index struct {
	mu      sync.RWMutex
	entries []journal.Entry
	log     logging.Logger
}

func New(log logging.Logger) *Index {
	return &Index{log: log}
}

// Set replaces the current snapshot.
func (i *Index) Set(entries []journal.Entry) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries = entries
}

// Entries returns the current snapshot in store order.
func (i *Index) Entries() []journal.Entry {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.entries
}

// Search filters the current snapshot by query.
func (i *Index) Search(query string) []journal.Entry {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return Filter(i.entries, query)
}

// Run consumes a live snapshot feed until it closes or ctx is done. Each
// received snapshot replaces the index contents.
func (i *Index) Run(ctx context.Context, feed <-chan []journal.Entry) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-feed:
			if !ok {
				i.log.Debug(ctx, "entry feed closed")
				return
			}
			i.Set(snapshot)
		}
	}
}
