package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for username, email and password and creates the account.
// The server logs the new user in right away.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.client.Register(ctx, userName, email, string(password))
	if err != nil {
		a.report(err)
		return err
	}

	a.userName = u.Username
	fmt.Fprintf(a.out, "Registered and logged in as %s\n", u.Username)
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.client.Login(ctx, userName, string(password))
	if err != nil {
		a.report(err)
		return err
	}

	a.userName = u.Username
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Username)
	return nil
}

// Logout ends the server session. Local state is cleared even if the
// server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.userName = ""
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.client.Me(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>, member since %s\n", u.Username, u.Email, u.CreatedAt.Local().Format("2006-01-02"))
	return nil
}
