package cli

import (
	"context"
	"errors"
	"fmt"
)

// Delete removes an entry by id: journal delete <id>
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("delete: entry id required")
	}

	userID, err := a.userID(ctx)
	if err != nil {
		return err
	}

	if err := a.pipe.Delete(ctx, userID, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted entry %s\n", args[0])
	return nil
}
