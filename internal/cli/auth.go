package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/onehealthportal/client-go/internal/models"
	"github.com/onehealthportal/client-go/internal/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. When the account has
// two-factor enabled the session parks in a pending state and the user
// finishes with the "verify" command.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	snap, err := a.sessions.Login(ctx, email, password)
	if err != nil {
		return err
	}

	switch snap.State {
	case session.StatePendingTwoFactor:
		printlnFn("A verification code was sent to you. Type 'verify' to enter it.")
	case session.StateAuthenticated:
		printlnFn("Logged in as", snap.Email)
	}
	return nil
}

// Verify submits the out-of-band code for a pending two-factor login.
func (a *App) Verify(ctx context.Context) error {
	code, err := getSimpleText(a.reader, "Enter verification code", os.Stdout)
	if err != nil {
		return err
	}

	email := a.sessions.Snapshot().Email
	snap, err := a.sessions.VerifyTwoFactor(ctx, email, code)
	if err != nil {
		return err
	}

	printlnFn("Logged in as", snap.Email)
	return nil
}

// Register prompts for the new account's fields and creates it. No login
// happens here; the user logs in afterwards.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	req := models.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
	}
	if err := a.sessions.Register(ctx, req); err != nil {
		return err
	}

	printlnFn("Account created. You can log in now.")
	return nil
}

// ResetPassword asks the backend to send a password reset email.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.sessions.ResetPassword(ctx, email); err != nil {
		return err
	}
	printlnFn("If the address is registered, a reset email is on its way.")
	return nil
}

// Profile refetches and prints the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	profile, err := a.sessions.RefreshProfile(ctx)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s %s <%s>", profile.FirstName, profile.LastName, profile.Email))
	if profile.Phone != "" {
		printlnFn("Phone:", profile.Phone)
	}
	if profile.TwoFactorEnabled {
		printlnFn("Two-factor authentication: on")
	}
	if exp := a.sessions.Snapshot().ExpiresAt; !exp.IsZero() {
		printlnFn("Session valid until:", exp.Format("2006-01-02 15:04"))
	}
	return nil
}

// Logout ends the session on the backend and locally.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}
