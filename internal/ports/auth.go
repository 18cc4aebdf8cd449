// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
)

// Credentials carries a username/password login attempt.
type Credentials struct {
	Email    string
	Password string
}

// AuthResult is the outcome of a credential check. When the account has a
// second factor enrolled, TwoFactorRequired is set and Profile is nil.
type AuthResult struct {
	TwoFactorRequired bool
	Profile           *domainauth.Profile
}

// AuthProvider authenticates credentials against the staff/patient directory.
type AuthProvider interface {
	// Authenticate checks credentials and returns the directory profile on
	// success. Invalid credentials surface as an error.
	Authenticate(ctx context.Context, creds Credentials) (AuthResult, error)

	// ProfileByID re-fetches the directory profile for an existing session.
	ProfileByID(ctx context.Context, userID string) (*domainauth.Profile, error)
}

// SSOInput carries inputs for initiating a browser SSO flow.
type SSOInput struct {
	RedirectURL string
}

// SSOExchangeInput groups parameters for the code/token exchange.
type SSOExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SSOProvider initiates and completes an OIDC login flow for staff accounts.
type SSOProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in SSOInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the directory profile.
	Exchange(ctx context.Context, in SSOExchangeInput) (*domainauth.Profile, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
