package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/firejournal/firejournal/internal/index"
)

// Watch follows the live entry feed and reprints the (optionally filtered)
// view after every change, until the context is cancelled or the feed
// closes: journal watch [query...]
func (a *App) Watch(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")

	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}

	feed, err := a.docs.Watch(ctx, userID)
	if err != nil {
		return err
	}

	idx := index.New(a.log)
	for snapshot := range feed {
		idx.Set(snapshot)
		matched := idx.Search(query)
		fmt.Fprintf(a.out, "--- %d entries ---\n", len(matched))
		a.printEntries(matched)
	}
	return nil
}
