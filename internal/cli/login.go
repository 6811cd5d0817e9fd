package cli

import (
	"context"
	"fmt"

	"github.com/firejournal/firejournal/internal/credstore"
)

// Login prompts for the shared credentials and stores them in the credential
// database, where the share tool picks them up as well.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	userID, err := GetSimpleText(a.reader, "User id", a.out)
	if err != nil {
		return err
	}

	creds := credstore.Credentials{Email: email, Password: password, UserID: userID}
	if err := a.creds.Save(ctx, creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	fmt.Fprintln(a.out, "Logged in.")
	return nil
}
