// Package session holds the client-side session state for tools that talk
// to the portal remotely. The Manager owns a single Identity value behind an
// explicit read/action interface; nothing else in the program mutates it.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/caredesk/clinic-portal/internal/clinicapi"
	"github.com/caredesk/clinic-portal/internal/domain/auth"
)

// API is the remote surface the Manager drives. *clinicapi.Client satisfies
// it; tests substitute scripted fakes.
type API interface {
	Login(ctx context.Context, req clinicapi.LoginRequest) (*clinicapi.LoginResult, error)
	Profile(ctx context.Context) (*auth.Profile, error)
	Logout(ctx context.Context) error
}

type ManagerOptions struct {
	API    API
	Logger *slog.Logger
}

// Manager is the session state machine. It starts empty with initializing
// set, resolves to authenticated or not after the first Initialize, and then
// changes only through Login and Logout. None of the three entry points ever
// return an error: every failure path resolves to "no identity change" or
// "no identity", and callers read the outcome from the returned value or the
// facade.
//
// Overlapping Login/Logout calls are not serialized against each other; the
// state reflects whichever call commits last. Callers should disable
// concurrent attempts at their own boundary.
type Manager struct {
	api API
	log *slog.Logger

	mu           sync.Mutex
	identity     *auth.Identity
	initializing bool
	busy         bool
}

func NewManager(opts ManagerOptions) *Manager {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Manager{api: opts.API, log: log, initializing: true}
}

// Identity returns the current identity, or nil when unauthenticated.
func (m *Manager) Identity() *auth.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// IsAuthenticated reports whether an identity is present.
func (m *Manager) IsAuthenticated() bool { return m.Identity() != nil }

// Initializing reports whether the startup silent reload is still pending.
// It is true from construction until the first Initialize resolves and never
// becomes true again.
func (m *Manager) Initializing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initializing
}

// Busy reports whether an explicit login or logout is in flight.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// Initialize silently reloads the profile from the remote session. Any
// failure, including "not signed in", resolves to no identity with no error
// surfaced; to the caller it looks identical to never having logged in.
func (m *Manager) Initialize(ctx context.Context) {
	profile, err := m.api.Profile(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.log.Debug("silent profile reload failed", "error", err)
		m.identity = nil
	} else {
		m.identity = auth.MapProfile(profile)
	}
	m.initializing = false
}

// Login authenticates with the given credentials and returns the resulting
// identity, or nil when the attempt did not produce one: wrong credentials,
// a required second factor, or any remote failure. The existing identity is
// left untouched on every nil return.
func (m *Manager) Login(ctx context.Context, req clinicapi.LoginRequest) *auth.Identity {
	m.setBusy(true)
	defer m.setBusy(false)

	result, err := m.api.Login(ctx, req)
	if err != nil {
		m.log.Debug("login failed", "error", err)
		return nil
	}
	if result.TwoFactorRequired {
		return nil
	}

	identity := auth.MapProfile(result.Profile)
	if identity == nil {
		// older servers omit the profile from the login response; fall back
		// to a fresh silent reload and adopt whatever it resolves to
		profile, err := m.api.Profile(ctx)
		if err != nil {
			m.log.Debug("profile fetch after login failed", "error", err)
		} else {
			identity = auth.MapProfile(profile)
		}
	}

	m.mu.Lock()
	m.identity = identity
	m.mu.Unlock()
	return identity
}

// Logout ends the session. The remote call is best-effort: whatever it
// returns, the local identity is cleared so the user is never left stuck in
// a signed-in state by a network failure.
func (m *Manager) Logout(ctx context.Context) {
	m.setBusy(true)
	defer m.setBusy(false)

	if err := m.api.Logout(ctx); err != nil {
		m.log.Debug("remote logout failed, clearing local session anyway", "error", err)
	}

	m.mu.Lock()
	m.identity = nil
	m.mu.Unlock()
}

func (m *Manager) setBusy(v bool) {
	m.mu.Lock()
	m.busy = v
	m.mu.Unlock()
}
