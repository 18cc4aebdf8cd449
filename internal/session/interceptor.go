package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/caredesk/clinic-portal/internal/clinicapi"
)

// Navigator performs a hard navigation to the login entry point. In the
// portal tooling this re-opens the login prompt; a browser shell would
// replace the current location.
type Navigator interface {
	NavigateToLogin()
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func()

func (f NavigatorFunc) NavigateToLogin() { f() }

type InterceptorOptions struct {
	Failures  <-chan clinicapi.CallError
	Navigator Navigator
	Logger    *slog.Logger
}

// Interceptor watches the shared remote-call failure channel and forces a
// navigation to login whenever any call anywhere reports 401. It is blunt on
// purpose: no distinction between an expired session and a single
// unauthorized call, and no token refresh attempt.
type Interceptor struct {
	failures  <-chan clinicapi.CallError
	navigator Navigator
	log       *slog.Logger
}

func NewInterceptor(opts InterceptorOptions) *Interceptor {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Interceptor{failures: opts.Failures, navigator: opts.Navigator, log: log}
}

// Run consumes failures until the context is done or the channel closes.
// Register it once at startup, in its own goroutine.
func (i *Interceptor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case failure, ok := <-i.failures:
			if !ok {
				return
			}
			if failure.StatusCode == http.StatusUnauthorized {
				i.log.Info("remote call unauthorized, redirecting to login", "op", failure.Op)
				i.navigator.NavigateToLogin()
			}
		}
	}
}
