package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/caredesk/clinic-portal/config"
	"github.com/caredesk/clinic-portal/internal/adapters/mockdir"
	"github.com/caredesk/clinic-portal/internal/adapters/oidc"
	redisadapter "github.com/caredesk/clinic-portal/internal/adapters/redis"
	"github.com/caredesk/clinic-portal/internal/ports"
	"github.com/caredesk/clinic-portal/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisConfig config.RedisConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	prefix := cfg.RedisConfig.SessionPrefix
	if prefix == "" {
		prefix = "session:"
	}
	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, prefix)

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildMockAuthService(cfg, sessionStore)

	case config.AuthModeOIDC:
		return buildOIDCAuthService(cfg, sessionStore)

	default:
		return nil
	}
}

func buildMockAuthService(cfg AuthConfig, sessionStore ports.SessionStore) *service.AuthService {
	// Explicitly enabled dev auth mode; in-memory directory with seeded
	// accounts, one per role.
	prov := mockdir.NewProvider()

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:        prov,
		Sessions:        sessionStore,
		SessionTTL:      cfg.Auth.SessionTTL,
		DefaultClinicID: cfg.Auth.DefaultClinicID,
	})
}

func buildOIDCAuthService(cfg AuthConfig, sessionStore ports.SessionStore) *service.AuthService {
	// Only enable when fully configured
	oc := cfg.Auth.OIDC
	if oc.DiscoveryURL == "" || oc.ClientID == "" || oc.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOIDC selected but required config missing; auth disabled",
				"discovery_url_empty", oc.DiscoveryURL == "",
				"client_id_empty", oc.ClientID == "",
				"client_secret_empty", oc.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oc.ClientID,
		ClientSecret: oc.ClientSecret,
		RedirectURL:  oc.RedirectURL,
		Scope:        oc.Scope,
		DiscoveryURL: oc.DiscoveryURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		}
		return nil
	}

	// Credential logins and profile refreshes still go through the local
	// directory; only the SSO flow talks to the identity provider.
	return service.NewAuthService(service.AuthServiceOptions{
		Provider:        mockdir.NewProvider(),
		SSO:             prov,
		Sessions:        sessionStore,
		SessionTTL:      cfg.Auth.SessionTTL,
		DefaultClinicID: cfg.Auth.DefaultClinicID,
	})
}
