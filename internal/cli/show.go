package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/firejournal/firejournal/internal/journal"
)

// Show displays one entry and fetches its image back from the blob store:
// journal show [-o out.jpg] <id>
func (a *App) Show(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	outPath := fs.String("o", "", "write the image to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: show [-o file] <id>")
	}

	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}

	entry, err := a.findEntry(ctx, userID, fs.Arg(0))
	if err != nil {
		return err
	}

	a.printEntries([]journal.Entry{entry})

	if entry.ImagePath == nil {
		fmt.Fprintln(a.out, "no image")
		return nil
	}

	image, err := a.pipe.LoadImage(ctx, entry)
	if err != nil {
		return err
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, image, 0o600); err != nil {
			return fmt.Errorf("writing image: %w", err)
		}
		fmt.Fprintf(a.out, "image: %d bytes -> %s\n", len(image), *outPath)
		return nil
	}

	fmt.Fprintf(a.out, "image: %d bytes (%s)\n", len(image), *entry.ImagePath)
	return nil
}
