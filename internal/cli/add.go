package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/firejournal/firejournal/internal/pipeline"
)

// Add submits a new entry: journal add [-i image.jpg] [-f] <caption...>
func (a *App) Add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	imagePath := fs.String("i", "", "path of an image to attach")
	favorite := fs.Bool("f", false, "mark as favorite")
	if err := fs.Parse(args); err != nil {
		return err
	}
	caption := strings.Join(fs.Args(), " ")

	userID, err := a.userID(ctx)
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

	entry, err := a.pipe.Submit(ctx, pipeline.SubmitInput{
		UserID:     userID,
		Caption:    caption,
		IsFavorite: *favorite,
		Image:      image,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created entry %s\n", entry.ID)
	return nil
}
