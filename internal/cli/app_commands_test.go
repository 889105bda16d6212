package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/credentials"
	"github.com/onehealthportal/client-go/internal/logging"
	"github.com/onehealthportal/client-go/internal/services"
	"github.com/onehealthportal/client-go/internal/session"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			if s, ok := a.(string); ok {
				parts[i] = s
			}
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &printed
}

func newTestApp(t *testing.T, handler http.Handler, lines ...string) *App {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, credentials.RunMigrations(context.Background(), db))

	log := logging.New(io.Discard, slog.LevelError)
	store := credentials.NewStore(db, log)
	apiClient := api.New(api.Config{BaseURL: srv.URL, Creds: store, Logger: log})
	portal := services.NewPortal(apiClient)
	sessions := session.NewManager(portal, store, apiClient.Validator(), log)
	apiClient.OnAuthFailure(sessions.HandleAuthFailure)

	return &App{
		sessions: sessions,
		portal:   portal,
		log:      log,
		reader:   readerFromLines(lines...),
	}
}

// ------------ tests ------------

func TestApp_Login_FullFlow(t *testing.T) {
	silencePrintln(t)

	oldPw := getPassword
	getPassword = func(io.Writer) (string, error) { return "pw", nil }
	t.Cleanup(func() { getPassword = oldPw })

	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "T1",
			"user_id":      42,
			"user":         map[string]any{"email": "a@b.com"},
		})
	}), "a@b.com")

	require.NoError(t, app.Login(context.Background()))
	require.True(t, app.isLoggedIn())
	require.Equal(t, "(a@b.com)", app.getStatus())
}

func TestApp_Login_TwoFactorThenVerify(t *testing.T) {
	silencePrintln(t)

	oldPw := getPassword
	getPassword = func(io.Writer) (string, error) { return "pw", nil }
	t.Cleanup(func() { getPassword = oldPw })

	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{"requires_2fa": true})
		case "/auth/verify-2fa":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "999999", req["token"])
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "T2",
				"user_id":      42,
				"user":         map[string]any{"email": "a@b.com"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}), "a@b.com", "999999")

	ctx := context.Background()
	require.NoError(t, app.Login(ctx))
	require.True(t, app.isPendingVerification())

	require.NoError(t, app.Verify(ctx))
	require.True(t, app.isLoggedIn())
}

func TestApp_Appointments_PrintsHistory(t *testing.T) {
	printed := silencePrintln(t)

	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/appointments/history", r.URL.Path)
		w.Write([]byte(`[{"id":7,"doctor_name":"Dr. Who","hospital_name":"Central","appointment_date":"2026-09-01","appointment_time":"10:30","status":"confirmed"}]`))
	}))

	require.NoError(t, app.Appointments(context.Background()))
	require.NotEmpty(t, *printed)
	require.Contains(t, (*printed)[0], "Dr. Who")
}

func TestApp_Logout_ClearsSession(t *testing.T) {
	silencePrintln(t)

	oldPw := getPassword
	getPassword = func(io.Writer) (string, error) { return "pw", nil }
	t.Cleanup(func() { getPassword = oldPw })

	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "T1",
				"user_id":      42,
				"user":         map[string]any{"email": "a@b.com"},
			})
		case "/auth/logout":
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}), "a@b.com")

	ctx := context.Background()
	require.NoError(t, app.Login(ctx))
	require.NoError(t, app.Logout(ctx))
	require.False(t, app.isLoggedIn())
	require.Equal(t, "", app.getStatus())
}
