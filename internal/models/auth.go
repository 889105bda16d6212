// Package models holds the request/response shapes exchanged with the portal
// backend. Validation tags describe the minimum shape the client relies on;
// anything else the backend sends is passed through untouched.
package models

import "encoding/json"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyTwoFactorRequest is the body of POST /auth/verify-2fa. The backend
// names the code field "token". The code is opaque here; its digit policy
// belongs to the backend.
type VerifyTwoFactorRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

// AuthResponse is what /auth/login and /auth/verify-2fa return. Either the
// two-factor branch is taken (Requires2FA / TwoFactorRequired set, no
// credential) or the full-credential branch (AccessToken + UserID + User).
//
// UserID is a json.Number because the backend serializes it as a number on
// some routes and as a string on others.
type AuthResponse struct {
	Requires2FA       bool            `json:"requires_2fa"`
	TwoFactorRequired bool            `json:"two_factor_required"`
	TwoFactorDetails  json.RawMessage `json:"two_factor_details,omitempty"`
	Message           string          `json:"message,omitempty"`

	AccessToken string      `json:"access_token"`
	UserID      json.Number `json:"user_id"`
	User        *UserProfile `json:"user"`
}

// NeedsTwoFactor reports whether the response asks for a second factor,
// accepting both flag spellings the backend has used.
func (r *AuthResponse) NeedsTwoFactor() bool {
	return r.Requires2FA || r.TwoFactorRequired
}

// CredentialPayload is the shape the client requires from a successful
// credential-issuing response. Session code copies an AuthResponse into it
// and validates it before any state transition.
type CredentialPayload struct {
	AccessToken string       `validate:"required"`
	UserID      string       `validate:"required"`
	User        *UserProfile `validate:"required"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ToggleTwoFactorRequest is the body of POST /auth/toggle-2fa.
type ToggleTwoFactorRequest struct {
	Enabled bool   `json:"enabled"`
	Method  string `json:"method"`
}

// ActiveSession describes one entry of GET /auth/active-sessions.
type ActiveSession struct {
	ID        string `json:"id"`
	Device    string `json:"device"`
	IPAddress string `json:"ip_address"`
	CreatedAt string `json:"created_at"`
	Current   bool   `json:"current"`
}
