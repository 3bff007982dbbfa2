package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dayscribe/internal/client/models"
	"github.com/dmitrijs2005/dayscribe/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, names and password and creates a new account.
// The new user is then taken through onboarding by the REPL.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if _, err := models.NormalizeEmail(email); err != nil {
		return err
	}

	first, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	last, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}
	if _, _, err := models.NormalizeName(first, last); err != nil {
		return err
	}

	if err := a.readPassword(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Creating account...")
	u, err := a.sessions.Register(ctx, email, first, last)
	if err != nil {
		return err
	}

	a.user = u
	a.loadTasks(ctx)
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.DisplayName())
	return nil
}

// Login prompts for email and password and signs in. Passwords are only
// checked against the length rule.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if _, err := models.NormalizeEmail(email); err != nil {
		return err
	}

	if err := a.readPassword(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Signing in...")
	u, err := a.sessions.Login(ctx, email)
	if err != nil {
		return err
	}

	a.user = u
	a.loadTasks(ctx)
	fmt.Fprintf(a.out, "Logged in as %s\n", u.DisplayName())
	return nil
}

func (a *App) readPassword() error {
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return models.ValidatePassword(password)
}

// Logout removes the session and the user's local tasks.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx, a.user); err != nil {
		return err
	}
	a.suggester.Invalidate()
	a.tasks.Reset()
	a.user = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	if a.user == nil {
		return common.ErrNotLoggedIn
	}
	fmt.Fprintf(a.out, "%s <%s>\nid: %s\n", a.user.DisplayName(), a.user.Email, a.user.ID)
	return nil
}
