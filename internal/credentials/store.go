package credentials

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/onehealthportal/client-go/internal/apperrors"
	"github.com/onehealthportal/client-go/internal/dbx"
	"github.com/onehealthportal/client-go/internal/logging"
)

// Store owns the current Credential: an in-memory cache in front of the
// durable key/value repository.
//
// Semantics:
//   - Save writes both keys in one transaction and updates the cache
//     synchronously after a successful commit, so a Load issued right after
//     Save never observes a stale value.
//   - Load fails open to "no credential" on read errors; a missing token means
//     no credential even when a user_id row survived.
//   - Clear drops the in-memory credential before touching storage and is
//     idempotent; a durable failure surfaces apperrors.ErrStorage.
//
// Every successful Save or Clear advances an internal generation. The API
// pipeline records the generation a request was sent under and clears on 401
// only when it is still current, so a 401 from a stale request cannot wipe a
// credential stored by a login that finished later.
type Store struct {
	db  *sql.DB
	log logging.Logger

	mu     sync.Mutex
	cached *Credential
	loaded bool
	gen    uint64
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{db: db, log: log}
}

func (s *Store) repo() Repository {
	return NewSQLiteRepository(s.db)
}

// Save persists the credential and updates the cache.
func (s *Store) Save(ctx context.Context, cred Credential) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyUserID, []byte(cred.UserID)); err != nil {
			return err
		}
		return repo.Set(ctx, keyAuthToken, []byte(cred.Token))
	})
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}

	s.mu.Lock()
	c := cred
	s.cached = &c
	s.loaded = true
	s.gen++
	s.mu.Unlock()
	return nil
}

// Load returns the current credential, or (nil, nil) when there is none.
// Durable read failures are logged and treated as "no credential": the store
// fails open to logged-out, never to a stale or half-read credential.
func (s *Store) Load(ctx context.Context) (*Credential, error) {
	cred, _, err := s.LoadWithGeneration(ctx)
	return cred, err
}

// LoadWithGeneration returns the current credential together with the
// generation it was read under, as one consistent pair: a Save or Clear
// landing concurrently changes both or neither. The API pipeline sends
// requests tagged with this generation so a later 401 can tell whether the
// credential it wants to purge is still the one the request carried.
func (s *Store) LoadWithGeneration(ctx context.Context) (*Credential, uint64, error) {
	s.mu.Lock()
	if s.loaded {
		cred, gen := s.cachedCopyLocked(), s.gen
		s.mu.Unlock()
		return cred, gen, nil
	}
	s.mu.Unlock()

	repo := s.repo()

	token, err := repo.Get(ctx, keyAuthToken)
	if err != nil {
		s.log.Warn(ctx, "credential read failed, treating as logged out", "error", err)
		return nil, 0, nil
	}
	if len(token) == 0 {
		cred, gen := s.finishLoad(nil)
		return cred, gen, nil
	}

	userID, err := repo.Get(ctx, keyUserID)
	if err != nil {
		s.log.Warn(ctx, "credential read failed, treating as logged out", "error", err)
		return nil, 0, nil
	}

	cred, gen := s.finishLoad(&Credential{Token: string(token), UserID: string(userID)})
	return cred, gen, nil
}

// finishLoad installs the freshly read value unless a Save or Clear got there
// first, in which case the cache already holds the newer truth. The returned
// credential and generation always describe the same state.
func (s *Store) finishLoad(cred *Credential) (*Credential, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.cached = cred
		s.loaded = true
	}
	return s.cachedCopyLocked(), s.gen
}

func (s *Store) cachedCopyLocked() *Credential {
	if s.cached == nil {
		return nil
	}
	c := *s.cached
	return &c
}

// Clear removes the credential and the cached profile. Clearing an
// already-empty store is a no-op success.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.dropLocked()
	s.mu.Unlock()
	return s.clearDurable(ctx)
}

// ClearIfGeneration clears only when gen is still the current generation.
// Returns false when the clear was skipped because the credential changed
// after gen was captured.
func (s *Store) ClearIfGeneration(ctx context.Context, gen uint64) (bool, error) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return false, nil
	}
	s.dropLocked()
	s.mu.Unlock()
	return true, s.clearDurable(ctx)
}

// Generation reports the current credential generation.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// dropLocked empties the in-memory credential first, so even a failed durable
// delete leaves the device logged out locally.
func (s *Store) dropLocked() {
	s.cached = nil
	s.loaded = true
	s.gen++
}

func (s *Store) clearDurable(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for _, key := range []string{keyAuthToken, keyUserID, keyUserProfile} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}

// SaveProfile caches the raw profile document alongside the credential.
// Best-effort display data; failures are reported but nothing depends on it.
func (s *Store) SaveProfile(ctx context.Context, raw []byte) error {
	if err := s.repo().Set(ctx, keyUserProfile, raw); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}

// LoadProfile returns the cached profile document, or (nil, nil) when absent.
// Read failures fail open to "no cached profile".
func (s *Store) LoadProfile(ctx context.Context) ([]byte, error) {
	raw, err := s.repo().Get(ctx, keyUserProfile)
	if err != nil {
		s.log.Warn(ctx, "profile cache read failed", "error", err)
		return nil, nil
	}
	return raw, nil
}
