package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/caredesk/clinic-portal/internal/clinicapi"
)

func TestInterceptorRedirectsOnUnauthorized(t *testing.T) {
	failures := make(chan clinicapi.CallError, 4)
	redirects := make(chan struct{}, 4)

	i := NewInterceptor(InterceptorOptions{
		Failures:  failures,
		Navigator: NavigatorFunc(func() { redirects <- struct{}{} }),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go i.Run(ctx)

	failures <- clinicapi.CallError{Op: "GET /api/patients", StatusCode: http.StatusUnauthorized}

	select {
	case <-redirects:
	case <-time.After(time.Second):
		t.Fatal("expected a redirect to login")
	}
}

func TestInterceptorIgnoresOtherFailures(t *testing.T) {
	failures := make(chan clinicapi.CallError, 4)
	redirects := make(chan struct{}, 4)

	i := NewInterceptor(InterceptorOptions{
		Failures:  failures,
		Navigator: NavigatorFunc(func() { redirects <- struct{}{} }),
	})

	failures <- clinicapi.CallError{Op: "GET /api/patients", StatusCode: http.StatusInternalServerError}
	failures <- clinicapi.CallError{Op: "GET /api/patients", StatusCode: http.StatusForbidden}
	close(failures)

	// Run returns once the channel drains, so no redirect can be pending.
	i.Run(context.Background())

	assert.Empty(t, redirects)
}
