/*
Package board contains the core state synchronization and session logic for
the task board.

This file defines the Session struct, the state machine that tracks the
active user. A session is restored from the durable local identity copy at
startup, validated against the authoritative user set once it has been
loaded, and persisted synchronously on every transition into or out of the
authenticated state.
*/
package board

import (
	"sync"

	"github.com/rs/zerolog"

	"taskboard/internal/app/model"
	"taskboard/internal/pkg/errs"
	"taskboard/internal/pkg/logx"
)

// SessionState enumerates the lifecycle states of the active session.
type SessionState int

const (
	// SessionUnresolved is the initial state before Restore has run.
	SessionUnresolved SessionState = iota

	// SessionRestoring means a durable identity copy was found but has not
	// yet been validated against the loaded user set.
	SessionRestoring

	// SessionAuthenticated means the session is bound to a validated user.
	SessionAuthenticated

	// SessionAnonymous means no identity is bound: none was stored, or
	// validation failed, or the user signed out.
	SessionAnonymous
)

// String returns a readable name for the session state, used in logs.
func (s SessionState) String() string {
	switch s {
	case SessionUnresolved:
		return "unresolved"
	case SessionRestoring:
		return "restoring"
	case SessionAuthenticated:
		return "authenticated"
	case SessionAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// IdentityStore is the durable local store holding one serialized copy of the
// active user. Get returns nil without error when nothing usable is stored.
type IdentityStore interface {
	Get() (*model.User, error)
	Set(model.User) error
	Clear() error
}

// Session tracks the currently active user.
// The bound user always comes from the authoritative user set; the durable
// copy is only a restore hint and is never trusted past validation.
type Session struct {
	// mu protects state, restored, and current.
	mu sync.RWMutex

	// state is the current lifecycle state.
	state SessionState

	// restored holds the durable copy read at startup, awaiting validation.
	restored *model.User

	// current is the validated active user, nil unless authenticated.
	current *model.User

	// identity is the durable local identity store.
	identity IdentityStore

	// structured logger with session context.
	logger zerolog.Logger
}

// NewSession constructs a Session in the unresolved state.
func NewSession(identity IdentityStore) *Session {
	sessionLogger := logx.Logger().With().Str("component", "Session").Logger()

	return &Session{
		state:    SessionUnresolved,
		identity: identity,
		logger:   sessionLogger,
	}
}

// Restore reads the possibly-absent identity copy from the durable store.
// A present copy moves the session to the restoring state; an absent or
// unreadable copy moves it straight to anonymous. Never fatal.
func (s *Session) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.identity.Get()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Could not read saved identity. Continuing without one.")
		saved = nil
	}

	if saved == nil {
		s.state = SessionAnonymous
		s.logger.Info().Msg("No saved identity found.")
		return
	}

	s.restored = saved
	s.state = SessionRestoring
	s.logger.Info().Str("user_id", saved.ID).Msg("Saved identity found. Awaiting validation.")
}

// Validate checks the restored identity against the loaded user set.
// If the restored id exists, the session binds the authoritative record,
// not the possibly-stale durable copy. Otherwise the durable copy is
// cleared and the session falls back to anonymous. Only meaningful in the
// restoring state; a no-op otherwise.
func (s *Session) Validate(users []model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionRestoring {
		return
	}

	restored := s.restored
	s.restored = nil

	for _, u := range users {
		if u.ID == restored.ID {
			s.bind(u)
			s.logger.Info().Str("user_id", u.ID).Msg("Saved identity validated. Session restored.")
			return
		}
	}

	s.logger.Warn().Str("user_id", restored.ID).Msg("Saved identity no longer exists. Clearing it.")
	s.clear()
}

// Login binds the session to the user with the given id, if it is present in
// the known user set. An unknown id causes no transition and is reported to
// the caller.
func (s *Session) Login(id string, users []model.User) *errs.CustomError {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		if u.ID == id {
			s.bind(u)
			s.logger.Info().Str("user_id", u.ID).Msg("User signed in.")
			return nil
		}
	}

	s.logger.Warn().Str("user_id", id).Msg("Sign-in attempted with unknown user id.")
	return errs.NewError(errs.ErrUserNotFound)
}

// Logout clears the session and the durable identity copy.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	s.logger.Info().Msg("User signed out.")
}

// Current returns a copy of the active user, or nil when not authenticated.
func (s *Session) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// bind transitions into the authenticated state and synchronously persists
// the durable identity copy. Callers must hold mu.
func (s *Session) bind(u model.User) {
	s.current = &u
	s.state = SessionAuthenticated

	if err := s.identity.Set(u); err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("Failed to persist identity copy. Session remains bound.")
	}
}

// clear transitions into the anonymous state and synchronously clears the
// durable identity copy. Callers must hold mu.
func (s *Session) clear() {
	s.current = nil
	s.restored = nil
	s.state = SessionAnonymous

	if err := s.identity.Clear(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear identity copy.")
	}
}
