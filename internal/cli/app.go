package cli

import (
	"bufio"
	"context"
	"net/http"
	"os"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/config"
	"github.com/onehealthportal/client-go/internal/credentials"
	"github.com/onehealthportal/client-go/internal/logging"
	"github.com/onehealthportal/client-go/internal/services"
	"github.com/onehealthportal/client-go/internal/session"

	_ "modernc.org/sqlite"
)

// App is the interactive portal client. It owns the wiring between the
// credential store, the API pipeline, the session manager and the REPL.
type App struct {
	config   *config.Config
	sessions *session.Manager
	portal   *services.Portal
	log      logging.Logger
	reader   *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := credentials.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}
	store := credentials.NewStore(db, log)

	apiClient := api.New(api.Config{
		BaseURL: c.BaseURL,
		HTTP:    &http.Client{Timeout: c.RequestTimeout},
		Creds:   store,
		Logger:  log,
	})
	portal := services.NewPortal(apiClient)
	sessions := session.NewManager(portal, store, apiClient.Validator(), log)
	apiClient.OnAuthFailure(sessions.HandleAuthFailure)

	return &App{
		config:   c,
		sessions: sessions,
		portal:   portal,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session and enters the REPL. It blocks until
// the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	wasAuthenticated := false
	a.sessions.Subscribe(func(s session.Snapshot) {
		if s.State == session.StateUnauthenticated && wasAuthenticated {
			printlnFn("Session ended. Log in again to continue.")
		}
		wasAuthenticated = s.State == session.StateAuthenticated
	})

	snap := a.sessions.Restore(ctx)
	if snap.State == session.StateAuthenticated {
		printlnFn("Welcome back,", snap.Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Snapshot().State == session.StateAuthenticated
}

func (a *App) isPendingVerification() bool {
	return a.sessions.Snapshot().State == session.StatePendingTwoFactor
}

func (a *App) getStatus() string {
	snap := a.sessions.Snapshot()
	switch snap.State {
	case session.StateAuthenticated:
		return "(" + snap.Email + ")"
	case session.StatePendingTwoFactor:
		return "(" + snap.Email + " awaiting code)"
	default:
		return ""
	}
}
