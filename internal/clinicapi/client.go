// Package clinicapi is the HTTP client for the clinic portal's remote API.
// It owns the session cookie jar and publishes every failed call on a shared
// failure channel so cross-cutting handlers can react without being wired
// into each call site.
package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/caredesk/clinic-portal/internal/domain/auth"
)

// ErrUnauthorized is returned when the server answers 401.
var ErrUnauthorized = errors.New("unauthorized")

const failureBuffer = 32

type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client // optional, a jar is attached if missing
	Logger     *slog.Logger
}

type Client struct {
	base     *url.URL
	http     *http.Client
	log      *slog.Logger
	failures chan CallError
}

func NewClient(opts ClientOptions) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	hc := opts.HTTPClient
	if hc == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		hc = &http.Client{Jar: jar, Timeout: 30 * time.Second}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base:     base,
		http:     hc,
		log:      log,
		failures: make(chan CallError, failureBuffer),
	}, nil
}

// Failures is the shared remote-call error channel. Sends never block; if
// nobody is draining the channel, older failures are dropped silently.
func (c *Client) Failures() <-chan CallError { return c.failures }

// Login authenticates with the portal. The session cookie, when granted, is
// retained in the client's jar for subsequent calls.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Profile fetches the signed-in subject's directory profile. A 401 means
// there is no live session and surfaces as ErrUnauthorized.
func (c *Client) Profile(ctx context.Context) (*auth.Profile, error) {
	var profile auth.Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout invalidates the remote session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.publish(CallError{Op: op, Err: err})
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		callErr := CallError{Op: op, StatusCode: resp.StatusCode}
		if resp.StatusCode == http.StatusUnauthorized {
			callErr.Err = ErrUnauthorized
		}
		c.publish(callErr)
		if callErr.Err != nil {
			return fmt.Errorf("%s: %w", op, callErr.Err)
		}
		return callErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) publish(e CallError) {
	select {
	case c.failures <- e:
	default:
		c.log.Debug("dropping remote call failure, channel full", "op", e.Op)
	}
}
