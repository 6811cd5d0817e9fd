package cli

import (
	"context"
	"strings"

	"github.com/firejournal/firejournal/internal/index"
)

// List prints the user's entries, filtered by an optional query:
// journal list [query...]
func (a *App) List(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")

	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}

	entries, err := a.docs.List(ctx, userID)
	if err != nil {
		return err
	}

	a.printEntries(index.Filter(entries, query))
	return nil
}
