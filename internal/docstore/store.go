// Package docstore defines the remote document-store collaborator: a
// hierarchical, per-user collection of entry records supporting
// create-with-generated-id, merge-update, delete-by-id, and a live
// subscription over the collection.
package docstore

import (
	"context"

	"github.com/firejournal/firejournal/internal/journal"
)

// Store is the per-user entry collection contract. Implementations assign
// the document id and createdAt timestamp on Create; clients never pick
// their own (avoids clock-skew ordering bugs).
type Store interface {
	// Create persists a new entry under entry.UserID and returns it with
	// the store-assigned ID and CreatedAt filled in.
	Create(ctx context.Context, entry journal.Entry) (journal.Entry, error)

	// Merge applies a partial update to an existing document. Nil patch
	// fields are preserved; the record is never replaced wholesale.
	// Returns common.ErrorNotFound when the document does not exist.
	Merge(ctx context.Context, userID, id string, patch journal.EntryPatch) error

	// Delete removes the document by id. Deleting a nonexistent id is not
	// an error.
	Delete(ctx context.Context, userID, id string) error

	// List returns the user's entries in the store's natural order
	// (creation order).
	List(ctx context.Context, userID string) ([]journal.Entry, error)

	// Watch returns a channel of full snapshots of the user's collection:
	// one immediately, then one after every observed change. The channel
	// closes when ctx is done.
	Watch(ctx context.Context, userID string) (<-chan []journal.Entry, error)
}
