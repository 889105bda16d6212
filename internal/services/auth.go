// Package services contains the typed wrappers over the portal's REST
// surface, one per backend domain. Each wrapper is transport glue only: the
// api pipeline owns credentials and error mapping, the session package owns
// state.
package services

import (
	"context"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/models"
)

// AuthAPI wraps the /auth routes.
type AuthAPI struct {
	client *api.Client
}

func NewAuthAPI(client *api.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

func (a *AuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.client.Post(ctx, api.RouteLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) VerifyTwoFactor(ctx context.Context, req models.VerifyTwoFactorRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.client.Post(ctx, api.RouteVerify2FA, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.Post(ctx, api.RouteLogout, nil, nil)
}

func (a *AuthAPI) Register(ctx context.Context, req models.RegisterRequest) error {
	return a.client.Post(ctx, api.RouteRegister, req, nil)
}

func (a *AuthAPI) ResetPassword(ctx context.Context, email string) error {
	return a.client.Post(ctx, api.RouteResetPassword, models.ResetPasswordRequest{Email: email}, nil)
}

func (a *AuthAPI) ToggleTwoFactor(ctx context.Context, enabled bool, method string) error {
	if method == "" {
		method = "email"
	}
	return a.client.Post(ctx, api.RouteToggle2FA, models.ToggleTwoFactorRequest{Enabled: enabled, Method: method}, nil)
}

func (a *AuthAPI) ActiveSessions(ctx context.Context) ([]models.ActiveSession, error) {
	var sessions []models.ActiveSession
	if err := a.client.Get(ctx, api.RouteActiveSessions, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
