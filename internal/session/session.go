// Package session owns the device's logical authentication state and
// mediates every credential-affecting operation. It is the only writer of
// session state; the HTTP pipeline reaches it through the auth-failure
// observer, never by import.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onehealthportal/client-go/internal/credentials"
	"github.com/onehealthportal/client-go/internal/models"
)

// State is the logical authentication state of the application instance.
type State string

const (
	// StateUnauthenticated is the initial state; no credential exists.
	StateUnauthenticated State = "unauthenticated"

	// StatePendingTwoFactor means the backend accepted the password but
	// requires a second factor; no credential exists yet.
	StatePendingTwoFactor State = "pending_2fa"

	// StateAuthenticated means a credential is present and was accepted by
	// the backend.
	StateAuthenticated State = "authenticated"
)

// Snapshot is the subscribable current-state value. Email carries the pending
// login's email in StatePendingTwoFactor and the profile email in
// StateAuthenticated. ExpiresAt is best-effort introspection of the bearer
// token's exp claim; zero when the token is opaque.
type Snapshot struct {
	State      State
	Email      string
	Credential *credentials.Credential
	Profile    *models.UserProfile
	ExpiresAt  time.Time
}

// Backend is the slice of the portal API the session manager drives.
// The services package provides the production implementation.
type Backend interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	VerifyTwoFactor(ctx context.Context, req models.VerifyTwoFactorRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, req models.RegisterRequest) error
	ResetPassword(ctx context.Context, email string) error
	Profile(ctx context.Context) (*models.UserProfile, error)
}

// tokenExpiry pulls the exp claim out of a JWT access token without
// verifying the signature; the token is proof for the backend, the client
// only wants the timestamp for display. Returns zero for opaque tokens.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
