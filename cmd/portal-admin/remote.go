package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/caredesk/clinic-portal/internal/clinicapi"
	"github.com/caredesk/clinic-portal/internal/domain/auth"
	"github.com/caredesk/clinic-portal/internal/session"
)

const (
	defaultPortalURL     = "http://localhost:8080"
	sessionCookieName    = "session_id"
	defaultRemoteTimeout = 30 * time.Second
)

type remoteOptions struct {
	BaseURL string
	Email   string
	Pass    string
	Session string
}

func parseRemoteFlags(name string, args []string, withCredentials bool) (remoteOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	opts := remoteOptions{}
	fs.StringVar(&opts.BaseURL, "base-url", defaultPortalURL, "portal base URL")
	if withCredentials {
		fs.StringVar(&opts.Email, "email", "", "account email (required)")
		fs.StringVar(&opts.Pass, "password", "", "account password (required)")
	} else {
		fs.StringVar(&opts.Session, "session", "", "session cookie value (required)")
	}
	if err := fs.Parse(args); err != nil {
		return remoteOptions{}, err
	}
	if withCredentials && (opts.Email == "" || opts.Pass == "") {
		return remoteOptions{}, errors.New("both -email and -password are required")
	}
	if !withCredentials && opts.Session == "" {
		return remoteOptions{}, errors.New("-session is required")
	}
	return opts, nil
}

// remoteClient bundles the API client with the HTTP client whose jar holds
// the session cookie, so commands can read the cookie back out after login.
type remoteClient struct {
	api  *clinicapi.Client
	http *http.Client
	base *url.URL
}

func newRemoteClient(cmdCtx *commandContext, opts remoteOptions) (*remoteClient, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if opts.Session != "" {
		jar.SetCookies(base, []*http.Cookie{{Name: sessionCookieName, Value: opts.Session}})
	}
	hc := &http.Client{Jar: jar, Timeout: defaultRemoteTimeout}

	api, err := clinicapi.NewClient(clinicapi.ClientOptions{
		BaseURL:    opts.BaseURL,
		HTTPClient: hc,
		Logger:     cmdCtx.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &remoteClient{api: api, http: hc, base: base}, nil
}

// sessionCookie returns the current session cookie value, or empty.
func (c *remoteClient) sessionCookie() string {
	for _, cookie := range c.http.Jar.Cookies(c.base) {
		if cookie.Name == sessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseRemoteFlags("login", args, true)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultRemoteTimeout)
	defer cancel()

	client, err := newRemoteClient(cmdCtx, opts)
	if err != nil {
		return err
	}

	mgr := session.NewManager(session.ManagerOptions{
		API:    client.api,
		Logger: cmdCtx.Logger,
	})

	// Surface session expiry the same way the portal shell does.
	interceptor := session.NewInterceptor(session.InterceptorOptions{
		Failures: client.api.Failures(),
		Navigator: session.NavigatorFunc(func() {
			_ = writeln(os.Stderr, "session rejected, sign in again")
		}),
		Logger: cmdCtx.Logger,
	})
	go interceptor.Run(ctx)

	identity := mgr.Login(ctx, clinicapi.LoginRequest{
		Email:    opts.Email,
		Password: opts.Pass,
	})
	if identity == nil {
		return errors.New("login failed: bad credentials, second factor required, or portal unreachable")
	}

	return printIdentity(identity, client.sessionCookie())
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	opts, err := parseRemoteFlags("whoami", args, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultRemoteTimeout)
	defer cancel()

	client, err := newRemoteClient(cmdCtx, opts)
	if err != nil {
		return err
	}

	mgr := session.NewManager(session.ManagerOptions{
		API:    client.api,
		Logger: cmdCtx.Logger,
	})
	mgr.Initialize(ctx)

	identity := mgr.Identity()
	if identity == nil {
		return errors.New("not authenticated: session is missing, expired, or the portal is unreachable")
	}
	return printIdentity(identity, opts.Session)
}

func runLogout(cmdCtx *commandContext, args []string) error {
	opts, err := parseRemoteFlags("logout", args, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultRemoteTimeout)
	defer cancel()

	client, err := newRemoteClient(cmdCtx, opts)
	if err != nil {
		return err
	}

	mgr := session.NewManager(session.ManagerOptions{
		API:    client.api,
		Logger: cmdCtx.Logger,
	})
	mgr.Logout(ctx)

	return writeln(os.Stdout, "session ended")
}

func printIdentity(identity *auth.Identity, sessionCookie string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "ID\t%s\n", identity.ID); err != nil {
		return err
	}
	if err := writef(w, "Name\t%s\n", identity.Name); err != nil {
		return err
	}
	if err := writef(w, "Email\t%s\n", identity.Email); err != nil {
		return err
	}
	if err := writef(w, "Role\t%s (%s)\n", identity.Role, identity.RoleName); err != nil {
		return err
	}
	if sessionCookie != "" {
		if err := writef(w, "Session\t%s\n", sessionCookie); err != nil {
			return err
		}
	}
	return w.Flush()
}
