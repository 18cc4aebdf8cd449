// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
	"github.com/caredesk/clinic-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SSOProvider  = (*MockSSOProvider)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
)

// MockAuthProvider simulates a staff/patient directory for tests.
type MockAuthProvider struct {
	AuthenticateFunc func(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error)
	ProfileByIDFunc  func(ctx context.Context, userID string) (*domainauth.Profile, error)

	// Deterministic values for predictable testing
	DefaultProfile domainauth.Profile
	RequireTwoFA   bool
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		DefaultProfile: domainauth.Profile{
			ID:       "mock-user-1",
			Name:     "Mock Doctor",
			Username: "mdoctor",
			Email:    "mock.doctor@example.com",
			Role:     domainauth.ProfileRole{Name: "Doctor"},
		},
	}
}

func (m *MockAuthProvider) Authenticate(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, creds)
	}
	if m.RequireTwoFA {
		return ports.AuthResult{TwoFactorRequired: true}, nil
	}

	// Return a copy so callers cannot mutate the shared default.
	profile := m.DefaultProfile
	return ports.AuthResult{Profile: &profile}, nil
}

func (m *MockAuthProvider) ProfileByID(ctx context.Context, userID string) (*domainauth.Profile, error) {
	if m.ProfileByIDFunc != nil {
		return m.ProfileByIDFunc(ctx, userID)
	}
	if userID != m.DefaultProfile.ID {
		return nil, ErrNotFound
	}
	profile := m.DefaultProfile
	return &profile, nil
}

// MockSSOProvider simulates an IdP login flow with deterministic state/nonce handling.
type MockSSOProvider struct {
	BeginFunc    func(ctx context.Context, in ports.SSOInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.SSOExchangeInput) (*domainauth.Profile, error)

	AuthURL        string
	StatePrefix    string
	NoncePrefix    string
	DefaultProfile domainauth.Profile

	// Internal state tracking for deterministic behavior
	callCount int
}

// NewMockSSOProvider creates a MockSSOProvider with sensible defaults.
func NewMockSSOProvider() *MockSSOProvider {
	return &MockSSOProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultProfile: domainauth.Profile{
			ID:       "mock-sso-user-1",
			Name:     "Mock Admin",
			Username: "madmin",
			Email:    "mock.admin@example.com",
			Role:     domainauth.ProfileRole{Name: "Admin"},
		},
	}
}

func (m *MockSSOProvider) Begin(ctx context.Context, in ports.SSOInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}

	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	noncePrefix := m.NoncePrefix
	if noncePrefix == "" {
		noncePrefix = "nonce"
	}

	state := fmt.Sprintf("%s-%d", statePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", noncePrefix, m.callCount)

	return authURL, state, nonce, nil
}

func (m *MockSSOProvider) Exchange(ctx context.Context, in ports.SSOExchangeInput) (*domainauth.Profile, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	profile := m.DefaultProfile
	if profile.ID == "" {
		profile = domainauth.Profile{
			ID:    "mock-sso-user-1",
			Name:  "Mock Admin",
			Email: "mock.admin@example.com",
			Role:  domainauth.ProfileRole{Name: "Admin"},
		}
	}
	return &profile, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}
