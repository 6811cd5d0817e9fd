// Package pipeline wires the full ingestion flow: image metadata extraction,
// tag derivation, entry assembly, and the sync engine. Both entry points
// (the main CLI and the share tool) run the same pipeline; the share tool
// simply constructs it without a classifier.
package pipeline

import (
	"context"
	"fmt"

	"github.com/firejournal/firejournal/internal/common"
	"github.com/firejournal/firejournal/internal/journal"
	"github.com/firejournal/firejournal/internal/logging"
	"github.com/firejournal/firejournal/internal/metadata"
	"github.com/firejournal/firejournal/internal/syncengine"
	"github.com/firejournal/firejournal/internal/tags"
)

// Pipeline turns raw submit/edit input into persisted entries.
type Pipeline struct {
	extractor *metadata.Extractor
	deriver   *tags.Deriver
	engine    *syncengine.Engine
	log       logging.Logger
}

func New(extractor *metadata.Extractor, deriver *tags.Deriver, engine *syncengine.Engine, log logging.Logger) *Pipeline {
	return &Pipeline{extractor: extractor, deriver: deriver, engine: engine, log: log}
}

// SubmitInput is one new-entry capture.
type SubmitInput struct {
	UserID     string
	Caption    string
	IsFavorite bool
	Image      []byte
}

// EditInput carries the fields the edit flow lets a user touch. A nil
// NewImage keeps the existing image and its metadata.
type EditInput struct {
	Caption    string
	IsFavorite bool
	NewImage   []byte
}

// Submit runs the full ingestion flow for a new entry. The caption may be
// empty only when an image is present.
func (p *Pipeline) Submit(ctx context.Context, in SubmitInput) (journal.Entry, error) {
	if in.Caption == "" && len(in.Image) == 0 {
		return journal.Entry{}, common.ErrorEmptyEntry
	}

	meta := p.extractor.FromImage(ctx, in.Image)
	derived := p.deriver.Derive(ctx, in.Caption, in.Image)

	entry := journal.Assemble(in.UserID, in.Caption, in.IsFavorite, meta, derived, nil)

	created, err := p.engine.Create(ctx, entry, in.Image)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("submit: %w", err)
	}
	return created, nil
}

// SubmitDetached runs Submit on a context detached from the caller's
// cancellation: dismissing the invoking UI must not abandon an upload
// halfway. Completion is observed only through the returned channel, and
// failures are additionally logged.
func (p *Pipeline) SubmitDetached(ctx context.Context, in SubmitInput) <-chan error {
	done := make(chan error, 1)
	detached := context.WithoutCancel(ctx)

	go func() {
		_, err := p.Submit(detached, in)
		if err != nil {
			p.log.Error(detached, "detached submit failed", "user", in.UserID, "error", err)
		}
		done <- err
	}()

	return done
}

// Edit applies an edit to an existing entry. Classification is never re-run:
// hashtags are parsed from the new caption, and without any the stored auto
// tags are cleared rather than recomputed. Metadata is re-extracted only
// when a new image is supplied; otherwise the existing values carry over.
func (p *Pipeline) Edit(ctx context.Context, existing journal.Entry, in EditInput) (journal.Entry, error) {
	meta := metadata.Result{
		Timestamp: existing.MetadataTimestamp,
		Latitude:  existing.MetadataLatitude,
		Longitude: existing.MetadataLongitude,
	}
	if len(in.NewImage) > 0 {
		meta = p.extractor.FromImage(ctx, in.NewImage)
	}

	edit := journal.Edit{
		Caption:    in.Caption,
		IsFavorite: in.IsFavorite,
		UserTags:   tags.ParseHashtags(in.Caption),
		Metadata:   meta,
	}

	updated, err := p.engine.Update(ctx, existing, edit, in.NewImage)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("edit: %w", err)
	}
	return updated, nil
}

// LoadImage fetches an entry's image back from the blob store, size-capped.
func (p *Pipeline) LoadImage(ctx context.Context, entry journal.Entry) ([]byte, error) {
	return p.engine.LoadImage(ctx, entry)
}

// Delete removes an entry by id. Idempotent at the store layer.
func (p *Pipeline) Delete(ctx context.Context, userID, id string) error {
	if err := p.engine.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
