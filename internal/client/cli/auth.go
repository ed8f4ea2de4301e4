package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hackorsnooze/internal/common"
)

// Signup prompts for a username, display name and password and creates the
// account. On success the new user is logged in and remembered.
//
// The password byte slice is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	username, err := askText(a.reader, a.out, "Choose a username", true)
	if err != nil {
		return err
	}
	name, err := askText(a.reader, a.out, "Your name", true)
	if err != nil {
		return err
	}
	password, err := askPassword(a.out, username)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.session.Signup(ctx, username, password, name)
	if err != nil {
		a.log.Debug(ctx, "signup failed", "username", username, "error", err)
		fmt.Fprintln(a.out, userMessage(actionSignup, err))
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Login prompts for credentials and authenticates. A failed login leaves
// the current session untouched.
//
// The password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := askText(a.reader, a.out, "Username", true)
	if err != nil {
		return err
	}
	password, err := askPassword(a.out, username)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.session.Login(ctx, username, password)
	if err != nil {
		a.log.Debug(ctx, "login failed", "username", username, "error", err)
		fmt.Fprintln(a.out, userMessage(actionLogin, err))
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	return nil
}

// Logout forgets the current user and the remembered login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout could not clear stored credentials", "error", err)
		fmt.Fprintln(a.out, "Logged out, but the saved login could not be removed.")
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s), member since %s: %d favorites, %d stories\n",
		u.Username, u.Name, u.CreatedAt.Format("2006-01-02"), len(u.Favorites()), len(u.OwnStories()))
	return nil
}
