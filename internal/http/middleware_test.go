package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
	"github.com/caredesk/clinic-portal/internal/service"
)

// mockAuthServiceForMiddleware is a test double for AuthServiceInterface.
type mockAuthServiceForMiddleware struct {
	getSessionFunc func(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

func (m *mockAuthServiceForMiddleware) GetSession(
	ctx context.Context,
	sessionID string,
) (*domainauth.Session, error) {
	if m.getSessionFunc != nil {
		return m.getSessionFunc(ctx, sessionID)
	}
	return &domainauth.Session{
		ID:        sessionID,
		UserID:    "test-user",
		Email:     "test@example.com",
		Role:      domainauth.RoleDoctor,
		ClinicID:  "clinic-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// Implement other methods to satisfy the interface.
func (m *mockAuthServiceForMiddleware) Login(
	_ctx context.Context,
	_input service.LoginInput,
) (*service.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAuthServiceForMiddleware) BeginSSO(
	_ctx context.Context,
	_redirectURL string,
) (*service.BeginSSOResult, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAuthServiceForMiddleware) CompleteSSO(
	_ctx context.Context,
	_input service.CompleteSSOInput,
) (*domainauth.Session, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAuthServiceForMiddleware) SessionProfile(
	_ctx context.Context,
	_sess *domainauth.Session,
) *domainauth.Profile {
	return nil
}

func (m *mockAuthServiceForMiddleware) Logout(_ctx context.Context, _sessionID string) error {
	return errors.New("not implemented")
}

func sessionWithRole(role domainauth.Role) func(context.Context, string) (*domainauth.Session, error) {
	return func(_ context.Context, sessionID string) (*domainauth.Session, error) {
		return &domainauth.Session{
			ID:        sessionID,
			UserID:    "user-1",
			Email:     "user@example.com",
			Role:      role,
			RoleName:  string(role),
			ClinicID:  "clinic-1",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil
	}
}

func TestRequireAuth_Success(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{}
	middleware := RequireAuth(mockSvc)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSessionFromContext(r.Context())
		assert.NotNil(t, session)
		assert.Equal(t, "test-session-id", session.ID)
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "test-session-id"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_NoSessionAPI(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{}
	handler := RequireAuth(mockSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestRequireAuth_NoSessionBrowserRedirectsToLogin(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{}
	handler := RequireAuth(mockSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/doctor/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fdoctor%2Fdashboard", w.Header().Get("Location"))
}

func TestRequireAuth_InvalidSession(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{
		getSessionFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			return nil, errors.New("session not found")
		},
	}
	handler := RequireAuth(mockSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "invalid-session"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles_Match(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{
		getSessionFunc: sessionWithRole(domainauth.RolePharmacist),
	}
	handler := RequireRoles(mockSvc, domainauth.RoleAdmin, domainauth.RolePharmacist)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetUserSessionFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, domainauth.RolePharmacist, session.Role)
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/prescriptions/rx-1/dispense", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles_WrongRoleAPI(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{
		getSessionFunc: sessionWithRole(domainauth.RoleDoctor),
	}
	handler := RequireRoles(mockSvc, domainauth.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Handler should not be called")
		}),
	)

	req := httptest.NewRequest(http.MethodDelete, "/api/patients/p-1", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_permissions")
}

func TestRequireRoles_WrongRoleBrowserRedirectsToOwnDashboard(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{
		getSessionFunc: sessionWithRole(domainauth.RoleDoctor),
	}
	handler := RequireRoles(mockSvc, domainauth.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Handler should not be called")
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/doctor/dashboard", w.Header().Get("Location"))
}

func TestRequireRoles_Unauthenticated(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{
		getSessionFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			return nil, errors.New("session not found")
		},
	}
	handler := RequireRoles(mockSvc, domainauth.RoleLab)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Handler should not be called")
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/lab/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Flab%2Fdashboard", w.Header().Get("Location"))
}

func TestOptionalAuth_WithSession(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{}
	handler := OptionalAuth(mockSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetUserSessionFromContext(r.Context())
		assert.True(t, ok)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth_WithoutSession(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{}
	handler := OptionalAuth(mockSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetUserSessionFromContext(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", DashboardPath(domainauth.RoleAdmin))
	assert.Equal(t, "/doctor/dashboard", DashboardPath(domainauth.RoleDoctor))
	assert.Equal(t, "/lab/dashboard", DashboardPath(domainauth.RoleLab))
	assert.Equal(t, "/pharmacist/dashboard", DashboardPath(domainauth.RolePharmacist))
	assert.Equal(t, "/patient/dashboard", DashboardPath(domainauth.RolePatient))
}

func TestIsBrowserRequest(t *testing.T) {
	api := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	api.Header.Set("Accept", "text/html")
	assert.False(t, isBrowserRequest(api))

	page := httptest.NewRequest(http.MethodGet, "/doctor/dashboard", nil)
	page.Header.Set("Accept", "text/html,application/xhtml+xml")
	assert.True(t, isBrowserRequest(page))

	noAccept := httptest.NewRequest(http.MethodGet, "/doctor/dashboard", nil)
	assert.True(t, isBrowserRequest(noAccept))

	jsonClient := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	jsonClient.Header.Set("Accept", "application/json")
	assert.False(t, isBrowserRequest(jsonClient))
}

func TestBrowserDetectionMiddleware(t *testing.T) {
	handler := BrowserDetection()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, IsBrowserRequest(r))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
