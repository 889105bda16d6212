package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/onehealthportal/client-go/internal/apperrors"
	"github.com/onehealthportal/client-go/internal/credentials"
	"github.com/onehealthportal/client-go/internal/logging"
	"github.com/onehealthportal/client-go/internal/models"
)

// Manager is the session state machine. It cycles between Unauthenticated,
// PendingTwoFactor and Authenticated for the lifetime of the process; there
// is no terminal state.
//
// Concurrent Login/Verify calls are not serialized here (the UI disables
// re-submission); the last completed credential write and the last transition
// win, and the store guarantees no interleaved half-credential is ever
// persisted.
type Manager struct {
	backend Backend
	creds   *credentials.Store
	log     logging.Logger
	v       *validator.Validate

	mu   sync.Mutex
	snap Snapshot
	subs []func(Snapshot)
}

func NewManager(backend Backend, creds *credentials.Store, v *validator.Validate, log logging.Logger) *Manager {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &Manager{
		backend: backend,
		creds:   creds,
		log:     log,
		v:       v,
		snap:    Snapshot{State: StateUnauthenticated},
	}
}

// Snapshot returns the current state value.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Subscribe registers fn to be called on every state transition. Callbacks
// run outside the manager's lock; transitions never wait for acknowledgement.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) transition(snap Snapshot) {
	m.mu.Lock()
	m.snap = snap
	subs := make([]func(Snapshot), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Login authenticates with email and password. Outcomes:
//   - backend wants a second factor: transition to PendingTwoFactor, no
//     credential is touched;
//   - backend issues a credential: persist it and transition to Authenticated;
//   - empty input: apperrors.ErrValidation without any network call;
//   - rejected password: apperrors.ErrAuth, state unchanged;
//   - malformed response: apperrors.ErrValidation, state unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) (Snapshot, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := m.v.Struct(req); err != nil {
		return m.Snapshot(), fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	resp, err := m.backend.Login(ctx, req)
	if err != nil {
		return m.Snapshot(), err
	}

	if resp.NeedsTwoFactor() {
		snap := Snapshot{State: StatePendingTwoFactor, Email: email}
		m.transition(snap)
		m.log.Info(ctx, "login pending second factor", "email", email)
		return snap, nil
	}

	return m.completeLogin(ctx, resp)
}

// VerifyTwoFactor submits the out-of-band code for a pending login. Only
// meaningful from PendingTwoFactor. A rejected code keeps the session
// pending so the user can retry.
func (m *Manager) VerifyTwoFactor(ctx context.Context, email, code string) (Snapshot, error) {
	if snap := m.Snapshot(); snap.State != StatePendingTwoFactor {
		return snap, fmt.Errorf("%w: no login awaiting verification", apperrors.ErrInvalidState)
	}

	req := models.VerifyTwoFactorRequest{Email: email, Token: code}
	if err := m.v.Struct(req); err != nil {
		return m.Snapshot(), fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	resp, err := m.backend.VerifyTwoFactor(ctx, req)
	if err != nil {
		// the backend reports a wrong code as 400; to the user that is a
		// rejected credential, not a malformed request
		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return m.Snapshot(), apperrors.NewAPIError(apperrors.ErrAuth, apiErr.Status, "invalid verification code")
		}
		return m.Snapshot(), err
	}

	return m.completeLogin(ctx, resp)
}

// completeLogin validates a credential-issuing response, persists the
// credential, and enters Authenticated. A malformed response leaves both the
// store and the state untouched.
func (m *Manager) completeLogin(ctx context.Context, resp *models.AuthResponse) (Snapshot, error) {
	payload := models.CredentialPayload{
		AccessToken: resp.AccessToken,
		UserID:      resp.UserID.String(),
		User:        resp.User,
	}
	if err := m.v.Struct(payload); err != nil {
		return m.Snapshot(), fmt.Errorf("%w: credential fields missing in response: %w", apperrors.ErrValidation, err)
	}

	cred := credentials.Credential{Token: payload.AccessToken, UserID: payload.UserID}
	if err := m.creds.Save(ctx, cred); err != nil {
		return m.Snapshot(), err
	}
	m.cacheProfile(ctx, resp.User)

	snap := Snapshot{
		State:      StateAuthenticated,
		Email:      resp.User.Email,
		Credential: &cred,
		Profile:    resp.User,
		ExpiresAt:  tokenExpiry(cred.Token),
	}
	m.transition(snap)
	m.log.Info(ctx, "session authenticated", "user_id", cred.UserID)
	return snap, nil
}

// Logout ends the session. The backend call is best-effort; local cleanup
// and the transition to Unauthenticated happen regardless, so the device is
// never stuck logged in locally. A storage failure is reported after the
// in-memory state has already been dropped.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.backend.Logout(ctx); err != nil {
		m.log.Warn(ctx, "backend logout failed, clearing local session anyway", "error", err)
	}

	err := m.creds.Clear(ctx)
	m.transition(Snapshot{State: StateUnauthenticated})
	m.log.Info(ctx, "session closed")
	return err
}

// Restore rebuilds session state on cold start from the persisted
// credential. It never fails: any problem resolves to Unauthenticated.
func (m *Manager) Restore(ctx context.Context) Snapshot {
	cred, _ := m.creds.Load(ctx)
	if cred == nil {
		snap := Snapshot{State: StateUnauthenticated}
		m.transition(snap)
		return snap
	}

	// the stored token's liveness probe: fetch the profile with it
	profile, err := m.backend.Profile(ctx)
	if err != nil {
		m.log.Warn(ctx, "stored credential rejected on restore", "error", err)
		if err := m.creds.Clear(ctx); err != nil {
			m.log.Error(ctx, "failed to clear stale credential", "error", err)
		}
		snap := Snapshot{State: StateUnauthenticated}
		m.transition(snap)
		return snap
	}

	m.cacheProfile(ctx, profile)
	snap := Snapshot{
		State:      StateAuthenticated,
		Email:      profile.Email,
		Credential: cred,
		Profile:    profile,
		ExpiresAt:  tokenExpiry(cred.Token),
	}
	m.transition(snap)
	m.log.Info(ctx, "session restored", "user_id", cred.UserID)
	return snap
}

// RefreshProfile refetches the cached profile while Authenticated.
func (m *Manager) RefreshProfile(ctx context.Context) (*models.UserProfile, error) {
	if snap := m.Snapshot(); snap.State != StateAuthenticated {
		return nil, fmt.Errorf("%w: not authenticated", apperrors.ErrInvalidState)
	}

	profile, err := m.backend.Profile(ctx)
	if err != nil {
		return nil, err
	}
	m.cacheProfile(ctx, profile)

	m.mu.Lock()
	if m.snap.State == StateAuthenticated {
		m.snap.Profile = profile
		m.snap.Email = profile.Email
	}
	m.mu.Unlock()
	return profile, nil
}

// Register creates a portal account. No state transition: the user logs in
// afterwards.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := m.v.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return m.backend.Register(ctx, req)
}

// ResetPassword asks the backend to send a reset email. No state transition.
func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	req := models.ResetPasswordRequest{Email: email}
	if err := m.v.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return m.backend.ResetPassword(ctx, email)
}

// HandleAuthFailure is the forced-logout observer for the API pipeline: the
// store has already been purged when it runs, so only the logical state
// moves. Repeated notifications while already logged out are no-ops.
func (m *Manager) HandleAuthFailure() {
	m.mu.Lock()
	if m.snap.State == StateUnauthenticated {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.transition(Snapshot{State: StateUnauthenticated})
	m.log.Warn(context.Background(), "session force-closed after authorization failure")
}

// cacheProfile stores the profile document next to the credential,
// best-effort.
func (m *Manager) cacheProfile(ctx context.Context, profile *models.UserProfile) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := m.creds.SaveProfile(ctx, raw); err != nil {
		m.log.Warn(ctx, "profile cache write failed", "error", err)
	}
}
