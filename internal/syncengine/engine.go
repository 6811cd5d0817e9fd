// Package syncengine owns create/update/delete of entries against the
// document store and the blob store, with one hard ordering rule: when an
// image is part of the operation, its blob upload must be confirmed before
// any document is written. A document must never reference a blob that is
// not there; the inverse (an orphaned blob after an aborted submit) is
// tolerated.
package syncengine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/firejournal/firejournal/internal/blobstore"
	"github.com/firejournal/firejournal/internal/common"
	"github.com/firejournal/firejournal/internal/docstore"
	"github.com/firejournal/firejournal/internal/journal"
	"github.com/firejournal/firejournal/internal/logging"
)

// Engine coordinates blob and document writes. Every operation is
// attempt-once: transient failures surface to the caller, who decides
// whether to resubmit.
type Engine struct {
	docs  docstore.Store
	blobs blobstore.Store
	log   logging.Logger
}

func New(docs docstore.Store, blobs blobstore.Store, log logging.Logger) *Engine {
	return &Engine{docs: docs, blobs: blobs, log: log}
}

// imagePath builds the blob key for a fresh entry image. The filename is a
// random identifier so concurrent submits from different entry points never
// collide.
func imagePath(userID string) string {
	return fmt.Sprintf("users/%s/entryImages/%s.jpg", userID, uuid.NewString())
}

// Create persists a new entry. When imageBytes is non-empty the blob is
// uploaded first; only after the upload confirms is the document written,
// with ImagePath pointing at the uploaded blob. An upload failure aborts the
// whole operation with no document write.
func (e *Engine) Create(ctx context.Context, entry journal.Entry, imageBytes []byte) (journal.Entry, error) {
	if len(imageBytes) > 0 {
		path := imagePath(entry.UserID)
		if err := e.blobs.Put(ctx, path, imageBytes, common.ImageContentType); err != nil {
			return journal.Entry{}, fmt.Errorf("image upload failed: %w", err)
		}
		entry.ImagePath = &path
		e.log.Debug(ctx, "image uploaded", "path", path)
	}

	created, err := e.docs.Create(ctx, entry)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("entry write failed: %w", err)
	}

	e.log.Info(ctx, "entry created", "id", created.ID, "user", created.UserID)
	return created, nil
}

// Update merges an edit into an existing entry. A replacement image, when
// supplied, is uploaded under a fresh path before the document is touched;
// the previous blob is left in place (blob deletion is out of scope).
func (e *Engine) Update(ctx context.Context, existing journal.Entry, edit journal.Edit, newImageBytes []byte) (journal.Entry, error) {
	if existing.ID == "" {
		return journal.Entry{}, fmt.Errorf("update: %w", common.ErrorNotFound)
	}

	if len(newImageBytes) > 0 {
		path := imagePath(existing.UserID)
		if err := e.blobs.Put(ctx, path, newImageBytes, common.ImageContentType); err != nil {
			return journal.Entry{}, fmt.Errorf("image upload failed: %w", err)
		}
		edit.ImagePath = &path
		e.log.Debug(ctx, "replacement image uploaded", "path", path)
	}

	updated, patch := journal.ApplyEdit(existing, edit)

	if err := e.docs.Merge(ctx, existing.UserID, existing.ID, patch); err != nil {
		return journal.Entry{}, fmt.Errorf("entry merge failed: %w", err)
	}

	e.log.Info(ctx, "entry updated", "id", existing.ID, "user", existing.UserID)
	return updated, nil
}

// Delete removes the entry document. Idempotent; the entry's blob, if any,
// is intentionally left behind.
func (e *Engine) Delete(ctx context.Context, userID, id string) error {
	if err := e.docs.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("entry delete failed: %w", err)
	}
	e.log.Info(ctx, "entry deleted", "id", id, "user", userID)
	return nil
}

// LoadImage fetches an entry's image back from the blob store, capped at
// common.MaxImageReadSize.
func (e *Engine) LoadImage(ctx context.Context, entry journal.Entry) ([]byte, error) {
	if entry.ImagePath == nil {
		return nil, common.ErrorNotFound
	}
	data, err := e.blobs.Get(ctx, *entry.ImagePath, common.MaxImageReadSize)
	if err != nil {
		return nil, fmt.Errorf("image load failed: %w", err)
	}
	return data, nil
}
