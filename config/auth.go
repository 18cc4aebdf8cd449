package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOIDC uses OIDC single sign-on plus the remote directory.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses the in-memory directory (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, mock)", v)
	}
}

// OIDCConfig contains OIDC single sign-on configuration.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"clinic-portal"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"clinic-portal"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/sso/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"mock"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// SessionTTL bounds how long an issued session stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// DefaultClinicID is stamped onto sessions whose directory profile
	// carries no clinic assignment.
	DefaultClinicID string `env:"DEFAULT_CLINIC_ID" envDefault:"clinic-1"`
}
