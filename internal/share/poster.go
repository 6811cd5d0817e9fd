// Package share implements the secondary entry point: a reduced version of
// the ingestion pipeline (no edit, no search) that authenticates with the
// shared stored credentials before writing into the same entry collection.
// It carries no classifier, so entries without hashtags get empty auto tags.
package share

import (
	"context"
	"errors"
	"fmt"

	"github.com/firejournal/firejournal/internal/common"
	"github.com/firejournal/firejournal/internal/credstore"
	"github.com/firejournal/firejournal/internal/journal"
	"github.com/firejournal/firejournal/internal/logging"
	"github.com/firejournal/firejournal/internal/pipeline"
)

// Poster posts shared content as journal entries.
type Poster struct {
	creds credstore.Repository
	pipe  *pipeline.Pipeline
	log   logging.Logger
}

func NewPoster(creds credstore.Repository, pipe *pipeline.Pipeline, log logging.Logger) *Poster {
	return &Poster{creds: creds, pipe: pipe, log: log}
}

// Post runs the reduced pipeline for one shared item. Without stored
// credentials it refuses as unauthorized; the returned error also matches
// common.ErrorNoCredentials so callers can tell the user to log in through
// the main app first. The blob-before-document ordering is enforced by the
// shared sync engine underneath.
func (p *Poster) Post(ctx context.Context, caption string, image []byte) (journal.Entry, error) {
	creds, err := credstore.Load(ctx, p.creds)
	if err != nil {
		p.log.Warn(ctx, "share post refused", "error", err)
		return journal.Entry{}, errors.Join(common.ErrorUnauthorized, err)
	}

	entry, err := p.pipe.Submit(ctx, pipeline.SubmitInput{
		UserID:  creds.UserID,
		Caption: caption,
		Image:   image,
	})
	if err != nil {
		return journal.Entry{}, fmt.Errorf("share post: %w", err)
	}

	p.log.Info(ctx, "shared entry posted", "id", entry.ID, "user", creds.UserID)
	return entry, nil
}
