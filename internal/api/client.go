// Package api is the single outbound pipeline to the portal backend. Every
// request goes through Client.Do: it attaches the current bearer credential,
// tags the request, maps failures onto the apperrors taxonomy, and reacts to
// authorization failures by purging the credential store and notifying the
// registered observer. No other component talks HTTP to the backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/onehealthportal/client-go/internal/apperrors"
	"github.com/onehealthportal/client-go/internal/credentials"
	"github.com/onehealthportal/client-go/internal/logging"
)

// Client is the REST pipeline. It holds no credential state of its own; the
// store is the source of truth and the client reads through its cache on
// every request.
type Client struct {
	baseURL string
	http    *http.Client
	creds   *credentials.Store
	log     logging.Logger
	v       *validator.Validate

	// onAuthFailure is set by whoever owns the session state. Kept as an
	// injected callback so this package has no upward import of it.
	onAuthFailure func()

	// clearing guards the forced-logout side effect: at most one clear and
	// one observer notification per 401 burst.
	clearing atomic.Bool
}

// Config carries the construction parameters for Client.
type Config struct {
	BaseURL string
	HTTP    *http.Client
	Creds   *credentials.Store
	Logger  logging.Logger
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		creds:   cfg.Creds,
		log:     cfg.Logger,
		v:       v,
	}
}

// OnAuthFailure registers the forced-logout observer. The callback runs after
// the credential store has been purged and before the failing request's error
// reaches its caller.
func (c *Client) OnAuthFailure(fn func()) {
	c.onAuthFailure = fn
}

// Validator exposes the pipeline's validator so callers can check
// request payloads with the same rules the boundary applies to responses.
func (c *Client) Validator() *validator.Validate {
	return c.v
}

// Do sends one request. body (optional) is JSON-encoded; out (optional) gets
// the JSON-decoded, shape-validated response. Callers distinguish failures
// with errors.Is against the apperrors sentinels.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.send(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: malformed response body: %w", apperrors.ErrValidation, err)
	}
	if err := c.validateShape(out); err != nil {
		return fmt.Errorf("%w: unexpected response shape: %w", apperrors.ErrValidation, err)
	}
	return nil
}

// Get, Post, Put, Delete are sugar over Do.

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Download fetches a binary document (e.g. an appointment receipt) through
// the same pipeline, credential handling included.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	return c.send(ctx, http.MethodGet, path, nil, "application/octet-stream")
}

func (c *Client) send(ctx context.Context, method, path string, body any, accept string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Attach the current credential if one exists; requests without a token
	// go out unauthenticated. The generation is read in the same locked step
	// as the token, so a later 401 cannot wipe a credential stored after
	// this send.
	var gen uint64
	authed := false
	if cred, g, _ := c.creds.LoadWithGeneration(ctx); cred != nil {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
		gen = g
		authed = true
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNetwork, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, c.mapError(ctx, resp.StatusCode, raw, authed, gen)
}

// mapError converts a non-2xx response into the typed taxonomy. 401 is the
// one status the pipeline interprets specially: credential purge plus
// observer notification, finished before the caller sees the error.
func (c *Client) mapError(ctx context.Context, status int, raw []byte, authed bool, gen uint64) error {
	detail := errorDetail(raw)

	switch {
	case status == http.StatusUnauthorized:
		if authed {
			c.forceLogout(ctx, gen)
		}
		return apperrors.NewAPIError(apperrors.ErrAuth, status, detail)
	case status == http.StatusForbidden:
		return apperrors.NewAPIError(apperrors.ErrAuth, status, detail)
	case status >= 500:
		return apperrors.NewAPIError(apperrors.ErrServer, status, detail)
	default:
		return apperrors.NewAPIError(apperrors.ErrValidation, status, detail)
	}
}

// forceLogout purges the credential and notifies the observer, at most once
// per burst. The generation guard skips the purge when the credential changed
// after the failing request was sent.
func (c *Client) forceLogout(ctx context.Context, gen uint64) {
	if !c.clearing.CompareAndSwap(false, true) {
		return
	}
	defer c.clearing.Store(false)

	cleared, err := c.creds.ClearIfGeneration(ctx, gen)
	if err != nil {
		c.log.Error(ctx, "credential purge after 401 failed", "error", err)
	}
	if !cleared {
		c.log.Debug(ctx, "skipping stale 401, credential has changed since the request was sent")
		return
	}
	c.log.Warn(ctx, "authorization rejected by backend, session will be closed")
	if c.onAuthFailure != nil {
		c.onAuthFailure()
	}
}

// validateShape runs struct-level validation on decoded responses. Non-struct
// payloads (slices, maps, scalars) are accepted as-is; their element types
// carry no required constraints.
func (c *Client) validateShape(out any) error {
	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return c.v.Struct(v.Interface())
}

// errorDetail extracts the backend's detail message from an error body.
// The portal backend reports failures as {"detail": "..."}.
func errorDetail(raw []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Message
}
