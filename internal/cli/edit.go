package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/firejournal/firejournal/internal/pipeline"
)

// Edit updates an entry: journal edit <id> [-i image.jpg] [-f] <caption...>
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("edit: entry id required")
	}
	id, rest := args[0], args[1:]

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	imagePath := fs.String("i", "", "path of a replacement image")
	favorite := fs.Bool("f", false, "mark as favorite")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	caption := strings.Join(fs.Args(), " ")

	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}

	existing, err := a.findEntry(ctx, userID, id)
	if err != nil {
		return err
	}

	var image []byte
	if *imagePath != "" {
		image, err = os.ReadFile(*imagePath)
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}
	}

	updated, err := a.pipe.Edit(ctx, existing, pipeline.EditInput{
		Caption:    caption,
		IsFavorite: *favorite,
		NewImage:   image,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Updated entry %s\n", updated.ID)
	return nil
}
