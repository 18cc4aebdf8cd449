package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
	"github.com/caredesk/clinic-portal/internal/ports"
	"github.com/google/uuid"
)

// DefaultSessionTTL is used when AuthServiceOptions does not set one.
const DefaultSessionTTL = 8 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	// SSO is optional; when nil, BeginSSO and CompleteSSO return an error.
	SSO      ports.SSOProvider
	Sessions ports.SessionStore
	// SessionTTL bounds session lifetime. Defaults to DefaultSessionTTL.
	SessionTTL time.Duration
	// DefaultClinicID is stamped onto sessions for accounts whose directory
	// profile carries no clinic assignment.
	DefaultClinicID string
}

// AuthService orchestrates authentication flows by coordinating the directory
// provider, profile mapping, and session persistence.
type AuthService struct {
	provider        ports.AuthProvider
	sso             ports.SSOProvider
	sessions        ports.SessionStore
	sessionTTL      time.Duration
	defaultClinicID string
}

var (
	errSessionExpired   = errors.New("session expired")
	errSSONotConfigured = errors.New("sso is not configured")
)

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		provider:        opts.Provider,
		sso:             opts.SSO,
		sessions:        opts.Sessions,
		sessionTTL:      ttl,
		defaultClinicID: opts.DefaultClinicID,
	}
}

// LoginInput carries a credential login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the outcome of a credential login. When the account
// requires a second factor, TwoFactorRequired is set and Session is nil.
// Profile is the directory profile the session was established from.
type LoginResult struct {
	TwoFactorRequired bool
	Session           *domainauth.Session
	Profile           *domainauth.Profile
}

// Login authenticates credentials, maps the directory profile to an identity,
// and persists a session on success.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" {
		return nil, errors.New("email is required")
	}
	if input.Password == "" {
		return nil, errors.New("password is required")
	}

	result, err := s.provider.Authenticate(ctx, ports.Credentials{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if result.TwoFactorRequired {
		return &LoginResult{TwoFactorRequired: true}, nil
	}

	session, err := s.establishSession(ctx, result.Profile)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Session: session, Profile: result.Profile}, nil
}

// BeginSSOResult contains the result of beginning an SSO login flow.
type BeginSSOResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginSSO initiates a browser SSO flow and returns the provider auth URL with
// state and nonce for the callback to verify.
func (s *AuthService) BeginSSO(ctx context.Context, redirectURL string) (*BeginSSOResult, error) {
	if s.sso == nil {
		return nil, errSSONotConfigured
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.sso.Begin(ctx, ports.SSOInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin sso flow: %w", err)
	}

	return &BeginSSOResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteSSOInput groups parameters for completing an SSO flow.
type CompleteSSOInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteSSO exchanges the authorization code for a directory profile and
// persists a session.
func (s *AuthService) CompleteSSO(ctx context.Context, input CompleteSSOInput) (*domainauth.Session, error) {
	if s.sso == nil {
		return nil, errSSONotConfigured
	}
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	profile, err := s.sso.Exchange(ctx, ports.SSOExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	return s.establishSession(ctx, profile)
}

// establishSession maps a directory profile onto a session and persists it.
func (s *AuthService) establishSession(ctx context.Context, profile *domainauth.Profile) (*domainauth.Session, error) {
	identity := domainauth.MapProfile(profile)
	if identity == nil {
		return nil, errors.New("provider returned no profile")
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		UserID:    identity.ID,
		Name:      identity.Name,
		Email:     identity.Email,
		Role:      identity.Role,
		RoleName:  identity.RoleName,
		ClinicID:  s.defaultClinicID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &session, nil
}

// GetSession retrieves a session by ID, cleaning up expired ones.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// ProfileForSession re-fetches the directory profile for a session and maps it
// to an identity. When the directory is unreachable it falls back to the
// snapshot captured at login.
func (s *AuthService) ProfileForSession(ctx context.Context, sess *domainauth.Session) *domainauth.Identity {
	if sess == nil {
		return nil
	}

	profile, err := s.provider.ProfileByID(ctx, sess.UserID)
	if err == nil {
		if identity := domainauth.MapProfile(profile); identity != nil {
			return identity
		}
	}
	snapshot := sess.Identity()
	return &snapshot
}

// SessionProfile returns the directory profile for a session, falling back to
// a document synthesized from the login snapshot when the directory is
// unreachable.
func (s *AuthService) SessionProfile(ctx context.Context, sess *domainauth.Session) *domainauth.Profile {
	if sess == nil {
		return nil
	}

	if profile, err := s.provider.ProfileByID(ctx, sess.UserID); err == nil && profile != nil {
		return profile
	}
	return &domainauth.Profile{
		ID:    sess.UserID,
		Name:  sess.Name,
		Email: sess.Email,
		Role:  domainauth.ProfileRole{Name: sess.RoleName},
	}
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// UUIDs are URL-safe and have good entropy
	return uuid.New().String()
}
