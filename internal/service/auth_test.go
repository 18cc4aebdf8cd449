package service

import (
	"context"
	"errors"
	"testing"
	"time"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
	mocks "github.com/caredesk/clinic-portal/internal/mocks/auth"
	"github.com/caredesk/clinic-portal/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSessionStore is a test helper for testing session store errors.
type mockSessionStore struct {
	saveFunc   func(context.Context, domainauth.Session) error
	getFunc    func(context.Context, string) (domainauth.Session, error)
	deleteFunc func(context.Context, string) error
}

func (m *mockSessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, sess)
	}
	return nil
}

func (m *mockSessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return domainauth.Session{}, nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newTestAuthService(provider ports.AuthProvider, sso ports.SSOProvider, sessions ports.SessionStore) *AuthService {
	return NewAuthService(AuthServiceOptions{
		Provider:        provider,
		SSO:             sso,
		Sessions:        sessions,
		SessionTTL:      time.Hour,
		DefaultClinicID: "clinic-1",
	})
}

func TestNewAuthService_Defaults(t *testing.T) {
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: mocks.NewMemorySessionStore(),
	})

	assert.NotNil(t, service)
	assert.Equal(t, DefaultSessionTTL, service.sessionTTL)
}

func TestAuthService_Login_Success(t *testing.T) {
	provider := mocks.NewMockAuthProvider()
	sessions := mocks.NewMemorySessionStore()
	service := newTestAuthService(provider, nil, sessions)

	ctx := context.Background()
	result, err := service.Login(ctx, LoginInput{
		Email:    "mock.doctor@example.com",
		Password: "password",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.TwoFactorRequired)
	require.NotNil(t, result.Session)
	assert.NotEmpty(t, result.Session.ID)
	assert.Equal(t, "mock-user-1", result.Session.UserID)
	assert.Equal(t, "Mock Doctor", result.Session.Name)
	assert.Equal(t, domainauth.RoleDoctor, result.Session.Role)
	assert.Equal(t, "Doctor", result.Session.RoleName)
	assert.Equal(t, "clinic-1", result.Session.ClinicID)
	assert.True(t, result.Session.ExpiresAt.After(time.Now()))

	// Session must be persisted under its ID
	stored, err := sessions.Get(ctx, result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session.UserID, stored.UserID)
}

func TestAuthService_Login_TwoFactorRequired(t *testing.T) {
	provider := mocks.NewMockAuthProvider()
	provider.RequireTwoFA = true
	sessions := mocks.NewMemorySessionStore()
	service := newTestAuthService(provider, nil, sessions)

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "admin-2fa@example.com",
		Password: "password",
	})

	require.NoError(t, err)
	assert.True(t, result.TwoFactorRequired)
	assert.Nil(t, result.Session)
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, mocks.NewMemorySessionStore())
	ctx := context.Background()

	result, err := service.Login(ctx, LoginInput{Password: "password"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "email is required")

	result, err = service.Login(ctx, LoginInput{Email: "a@b.com"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "password is required")
}

func TestAuthService_Login_ProviderError(t *testing.T) {
	provider := &mocks.MockAuthProvider{
		AuthenticateFunc: func(_ context.Context, _ ports.Credentials) (ports.AuthResult, error) {
			return ports.AuthResult{}, errors.New("invalid credentials")
		},
	}
	service := newTestAuthService(provider, nil, mocks.NewMemorySessionStore())

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "authenticate")
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthService_Login_NoProfile(t *testing.T) {
	provider := &mocks.MockAuthProvider{
		AuthenticateFunc: func(_ context.Context, _ ports.Credentials) (ports.AuthResult, error) {
			return ports.AuthResult{}, nil
		},
	}
	service := newTestAuthService(provider, nil, mocks.NewMemorySessionStore())

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "odd@example.com",
		Password: "password",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "no profile")
}

func TestAuthService_Login_UnknownRoleFallsBackToPatient(t *testing.T) {
	provider := mocks.NewMockAuthProvider()
	provider.DefaultProfile.Role = domainauth.ProfileRole{Name: "Janitor"}
	service := newTestAuthService(provider, nil, mocks.NewMemorySessionStore())

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "mock.doctor@example.com",
		Password: "password",
	})

	require.NoError(t, err)
	require.NotNil(t, result.Session)
	assert.Equal(t, domainauth.RolePatient, result.Session.Role)
}

func TestAuthService_Login_SessionSaveError(t *testing.T) {
	sessions := &mockSessionStore{
		saveFunc: func(_ context.Context, _ domainauth.Session) error {
			return errors.New("save error")
		},
	}
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, sessions)

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "mock.doctor@example.com",
		Password: "password",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "save session")
	assert.Contains(t, err.Error(), "save error")
}

func TestAuthService_BeginSSO_Success(t *testing.T) {
	sso := mocks.NewMockSSOProvider()
	service := newTestAuthService(mocks.NewMockAuthProvider(), sso, mocks.NewMemorySessionStore())

	result, err := service.BeginSSO(context.Background(), "http://localhost:8080/callback")

	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.Equal(t, "state-1", result.State)
	assert.Equal(t, "nonce-1", result.Nonce)
}

func TestAuthService_BeginSSO_NotConfigured(t *testing.T) {
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, mocks.NewMemorySessionStore())

	result, err := service.BeginSSO(context.Background(), "http://localhost:8080/callback")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "sso is not configured")
}

func TestAuthService_BeginSSO_EmptyRedirectURL(t *testing.T) {
	service := newTestAuthService(mocks.NewMockAuthProvider(), mocks.NewMockSSOProvider(), mocks.NewMemorySessionStore())

	result, err := service.BeginSSO(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "redirect URL is required")
}

func TestAuthService_CompleteSSO_Success(t *testing.T) {
	sso := mocks.NewMockSSOProvider()
	sessions := mocks.NewMemorySessionStore()
	service := newTestAuthService(mocks.NewMockAuthProvider(), sso, sessions)

	ctx := context.Background()
	session, err := service.CompleteSSO(ctx, CompleteSSOInput{
		Code:  "auth-code",
		State: "state-1",
		Nonce: "nonce-1",
	})

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "mock-sso-user-1", session.UserID)
	assert.Equal(t, domainauth.RoleAdmin, session.Role)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	_, err = sessions.Get(ctx, session.ID)
	require.NoError(t, err)
}

func TestAuthService_CompleteSSO_MissingParams(t *testing.T) {
	service := newTestAuthService(mocks.NewMockAuthProvider(), mocks.NewMockSSOProvider(), mocks.NewMemorySessionStore())
	ctx := context.Background()

	cases := []struct {
		name    string
		input   CompleteSSOInput
		wantErr string
	}{
		{"missing code", CompleteSSOInput{State: "s", Nonce: "n"}, "authorization code is required"},
		{"missing state", CompleteSSOInput{Code: "c", Nonce: "n"}, "state parameter is required"},
		{"missing nonce", CompleteSSOInput{Code: "c", State: "s"}, "nonce parameter is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session, err := service.CompleteSSO(ctx, tc.input)
			require.Error(t, err)
			assert.Nil(t, session)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestAuthService_CompleteSSO_ExchangeError(t *testing.T) {
	sso := &mocks.MockSSOProvider{
		ExchangeFunc: func(_ context.Context, _ ports.SSOExchangeInput) (*domainauth.Profile, error) {
			return nil, errors.New("exchange error")
		},
	}
	service := newTestAuthService(mocks.NewMockAuthProvider(), sso, mocks.NewMemorySessionStore())

	session, err := service.CompleteSSO(context.Background(), CompleteSSOInput{
		Code:  "auth-code",
		State: "state-1",
		Nonce: "nonce-1",
	})

	require.Error(t, err)
	assert.Nil(t, session)
	assert.Contains(t, err.Error(), "exchange authorization code")
	assert.Contains(t, err.Error(), "exchange error")
}

func TestAuthService_GetSession_Success(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, sessions)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-1",
		UserID:    "user-123",
		Email:     "user@example.com",
		Role:      domainauth.RoleDoctor,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, sessions.Save(ctx, session))

	result, err := service.GetSession(ctx, "test-session-1")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, session.ID, result.ID)
	assert.Equal(t, session.UserID, result.UserID)
	assert.Equal(t, session.Role, result.Role)
}

func TestAuthService_GetSession_EmptyID(t *testing.T) {
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, mocks.NewMemorySessionStore())

	result, err := service.GetSession(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "session ID is required")
}

func TestAuthService_GetSession_NotFound(t *testing.T) {
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, mocks.NewMemorySessionStore())

	result, err := service.GetSession(context.Background(), "non-existent")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "get session")
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, sessions)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "expired-session",
		UserID:    "user-123",
		Role:      domainauth.RolePatient,
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}
	require.NoError(t, sessions.Save(ctx, session))

	result, err := service.GetSession(ctx, "expired-session")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "session expired")

	// Expired session must be cleaned up
	_, err = sessions.Get(ctx, "expired-session")
	assert.Equal(t, mocks.ErrNotFound, err)
}

func TestAuthService_ProfileForSession_FreshProfile(t *testing.T) {
	provider := mocks.NewMockAuthProvider()
	service := newTestAuthService(provider, nil, mocks.NewMemorySessionStore())

	sess := &domainauth.Session{
		ID:     "s1",
		UserID: "mock-user-1",
		Name:   "Stale Name",
		Role:   domainauth.RoleDoctor,
	}
	identity := service.ProfileForSession(context.Background(), sess)

	require.NotNil(t, identity)
	assert.Equal(t, "Mock Doctor", identity.Name)
	assert.Equal(t, domainauth.RoleDoctor, identity.Role)
}

func TestAuthService_ProfileForSession_DirectoryDownUsesSnapshot(t *testing.T) {
	provider := &mocks.MockAuthProvider{
		ProfileByIDFunc: func(_ context.Context, _ string) (*domainauth.Profile, error) {
			return nil, errors.New("directory unavailable")
		},
	}
	service := newTestAuthService(provider, nil, mocks.NewMemorySessionStore())

	sess := &domainauth.Session{
		ID:       "s1",
		UserID:   "user-123",
		Name:     "Snapshot Name",
		Email:    "snap@example.com",
		Role:     domainauth.RolePharmacist,
		RoleName: "Pharmacist",
	}
	identity := service.ProfileForSession(context.Background(), sess)

	require.NotNil(t, identity)
	assert.Equal(t, "user-123", identity.ID)
	assert.Equal(t, "Snapshot Name", identity.Name)
	assert.Equal(t, domainauth.RolePharmacist, identity.Role)
}

func TestAuthService_ProfileForSession_NilSession(t *testing.T) {
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, mocks.NewMemorySessionStore())
	assert.Nil(t, service.ProfileForSession(context.Background(), nil))
}

func TestAuthService_Logout_Success(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, sessions)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-1",
		UserID:    "user-123",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, sessions.Save(ctx, session))

	require.NoError(t, service.Logout(ctx, "test-session-1"))

	_, err := sessions.Get(ctx, "test-session-1")
	assert.Equal(t, mocks.ErrNotFound, err)
}

func TestAuthService_Logout_EmptyID(t *testing.T) {
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, mocks.NewMemorySessionStore())
	assert.NoError(t, service.Logout(context.Background(), ""))
}

func TestAuthService_Logout_DeleteError(t *testing.T) {
	sessions := &mockSessionStore{
		deleteFunc: func(_ context.Context, _ string) error {
			return errors.New("delete error")
		},
	}
	service := newTestAuthService(mocks.NewMockAuthProvider(), nil, sessions)

	err := service.Logout(context.Background(), "test-session")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete session")
	assert.Contains(t, err.Error(), "delete error")
}

func TestGenerateSessionID(t *testing.T) {
	id1 := generateSessionID()
	id2 := generateSessionID()

	assert.NotEmpty(t, id1)
	assert.NotEmpty(t, id2)
	assert.NotEqual(t, id1, id2)

	// Should be valid UUID format
	assert.Len(t, id1, 36)
	assert.Contains(t, id1, "-")
}
