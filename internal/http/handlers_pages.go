package httpx

import (
	"html/template"
	"log/slog"
	"net/http"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
)

// PageHandlers renders the minimal server-side pages the portal ships with:
// the login form and the per-role dashboard shells. Everything else in the
// portal is API-driven.
type PageHandlers struct {
	Logger *slog.Logger
}

var loginPageTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Clinic Portal - Sign In</title>
</head>
<body>
  <main>
    <h1>Sign in to Clinic Portal</h1>
    <form method="post" action="/api/auth/login">
      <label>Email <input type="email" name="email" required></label>
      <label>Password <input type="password" name="password" required></label>
      {{if .RedirectURI}}<input type="hidden" name="redirect_uri" value="{{.RedirectURI}}">{{end}}
      <button type="submit">Sign in</button>
    </form>
    <p><a href="/auth/sso/login">Sign in with single sign-on</a></p>
  </main>
</body>
</html>
`))

var dashboardPageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Clinic Portal - {{.Title}}</title>
</head>
<body>
  <main>
    <h1>{{.Title}}</h1>
    <p>Signed in as {{.Name}} ({{.RoleName}}).</p>
    <p><a href="/api/auth/logout">Sign out</a></p>
  </main>
</body>
</html>
`))

// LoginPage renders the sign-in form. An already-authenticated visitor is sent
// straight to their dashboard.
func (h *PageHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session, ok := GetUserSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, DashboardPath(session.Role), http.StatusSeeOther)
		return
	}

	var data struct{ RedirectURI string }
	if raw := r.URL.Query().Get("redirect_uri"); raw != "" {
		data.RedirectURI = safeRedirectPath(raw)
	}
	h.renderPage(w, loginPageTemplate, data)
}

// Dashboard renders the dashboard shell for the given role. Route guards
// ensure only sessions holding that role reach this handler.
func (h *PageHandlers) Dashboard(role domainauth.Role, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetUserSessionFromContext(r.Context())
		if !ok {
			redirectToLogin(w, r)
			return
		}

		roleName := session.RoleName
		if roleName == "" {
			roleName = string(role)
		}
		data := struct {
			Title    string
			Name     string
			RoleName string
		}{Title: title, Name: session.Name, RoleName: roleName}
		h.renderPage(w, dashboardPageTemplate, data)
	}
}

func (h *PageHandlers) renderPage(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil && h.Logger != nil {
		h.Logger.Error("failed to render page", slog.String("template", tmpl.Name()), slog.Any("error", err))
	}
}
