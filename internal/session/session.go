// Package session owns the client's belief about the current authenticated
// identity: one bearer token and the resolved user record. The store is
// all-or-nothing: a populated user always sits behind a backend-accepted
// token, and any 401/403 tears both down and purges the persisted slot.
package session

import (
	"context"
	"fmt"
	"sync"

	"bee-go/internal/api"
	"bee-go/internal/bee"
)

// UserResolver resolves the identity behind the current token.
// Implemented by api.UsersService.
type UserResolver interface {
	Current(ctx context.Context) (*bee.User, error)
}

// Store is the single source of truth for "who is logged in".
type Store struct {
	tokens bee.TokenStore
	users  UserResolver
	logger bee.Logger

	mu          sync.Mutex
	token       string
	user        *bee.User
	initialized bool
}

// NewStore creates a Store. It holds no session until Initialize or Login.
func NewStore(tokens bee.TokenStore, users UserResolver, logger bee.Logger) *Store {
	if logger == nil {
		logger = bee.NewNopLogger()
	}
	return &Store{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

// Initialize restores the session from the persisted token slot. It runs
// its work exactly once per process; later calls are no-ops. An empty slot
// leaves the store unauthenticated without error. An auth rejection purges
// the slot and leaves the store unauthenticated without error; only
// transport failures surface to the caller.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true

	token, err := s.tokens.Load()
	if err != nil {
		return fmt.Errorf("loading persisted token: %w", err)
	}
	if token == "" {
		return nil
	}

	s.token = token
	if err := s.resolveLocked(ctx); err != nil {
		if api.IsAuthError(err) {
			s.teardownLocked()
			s.logger.Info("persisted token rejected, session cleared")
			return nil
		}
		s.token = ""
		s.user = nil
		return fmt.Errorf("restoring session: %w", err)
	}

	s.logger.Debug("session restored", "user", s.user.Username)
	return nil
}

// Initialized reports whether Initialize has run.
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Login persists the token and resolves the current user. When this
// returns, the session is either fully populated or fully cleared; a
// failure on any step purges the persisted slot again.
func (s *Store) Login(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true

	if err := s.tokens.Save(token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	s.token = token

	if err := s.resolveLocked(ctx); err != nil {
		s.teardownLocked()
		return fmt.Errorf("resolving user after login: %w", err)
	}

	s.logger.Info("logged in", "user", s.user.Username)
	return nil
}

// Logout purges the persisted token and clears the session immediately.
// No network call is made.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownLocked()
	s.logger.Info("logged out")
	return nil
}

// Refresh re-resolves the current user under the existing token, so
// dependent readers observe updated relationship collections. A 401/403
// behaves like an implicit logout. A transport failure keeps the previous
// snapshot and surfaces the error.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return bee.ErrNoSession
	}

	if err := s.resolveLocked(ctx); err != nil {
		if api.IsAuthError(err) {
			s.teardownLocked()
			s.logger.Info("token rejected during refresh, session cleared")
		}
		return fmt.Errorf("refreshing session: %w", err)
	}
	return nil
}

// Token returns the current bearer token, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Store) CurrentUser() *bee.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Authenticated reports whether a user is logged in.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// resolveLocked fetches the current user. Callers hold s.mu. The user
// field is only written on success, keeping population all-or-nothing.
func (s *Store) resolveLocked(ctx context.Context) error {
	user, err := s.users.Current(ctx)
	if err != nil {
		return err
	}
	s.user = user
	return nil
}

// teardownLocked clears memory and purges the persisted slot. Callers hold
// s.mu. A slot purge failure is logged, not returned: the in-memory
// session is already gone and callers cannot act on the residue.
func (s *Store) teardownLocked() {
	s.token = ""
	s.user = nil
	if err := s.tokens.Clear(); err != nil {
		s.logger.Error("failed to purge persisted token", "error", err)
	}
}

// Compile-time check that Store satisfies the service's session dependency
var _ bee.Session = (*Store)(nil)
