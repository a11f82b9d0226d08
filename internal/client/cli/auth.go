package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account on the server. On success it prints "Success!" and returns
// nil. Any I/O or transport error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, email, string(password)); err != nil {
		a.logger.Error(ctx, "registration failed", "error", err)
		return err
	}

	printlnFn("Success! You can now log in.")
	return nil
}

// Login prompts the user for credentials and authenticates against the
// server. The received access token is held by the transport for the rest
// of the session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		a.logger.Error(ctx, "login failed", "error", err)
		return err
	}

	a.userName = email
	printlnFn("Logged in as", email)
	return nil
}

// NewList creates a shopping list on the server and selects it.
func (a *App) NewList(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter list name", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.client.CreateList(ctx, name)
	if err != nil {
		a.logger.Error(ctx, "creating list failed", "error", err)
		return err
	}

	a.selectList(ctx, id)
	printlnFn("Created list", id)
	return nil
}

// UseList selects an existing list by its id. The list does not have to be
// reachable right now: a previously synced copy keeps working offline.
func (a *App) UseList(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter list id", os.Stdout)
	if err != nil {
		return err
	}

	a.selectList(ctx, id)
	printlnFn("Using list", id)
	return nil
}

// Share grants another account access to the currently selected list.
func (a *App) Share(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email to share with", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.ShareList(ctx, a.listID, email); err != nil {
		a.logger.Error(ctx, "sharing failed", "error", err)
		return err
	}

	printlnFn("Shared with", email)
	return nil
}
