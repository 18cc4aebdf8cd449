package clinicapi

import (
	"fmt"

	"github.com/caredesk/clinic-portal/internal/domain/auth"
)

// LoginRequest is the credential payload for the portal login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the decoded response of a login call. When the account has
// a second factor enrolled the server answers with TwoFactorRequired and no
// profile; the caller must continue a separate 2FA flow. Profile may also be
// absent on older servers, in which case a follow-up profile fetch is needed.
type LoginResult struct {
	TwoFactorRequired bool          `json:"two_factor_required"`
	Profile           *auth.Profile `json:"profile,omitempty"`
}

// CallError describes a failed remote call. Every non-2xx response and every
// transport failure is published on the client's failure channel as one of
// these, independent of what the calling code does with the returned error.
type CallError struct {
	Op         string
	StatusCode int // zero on transport failures
	Err        error
}

func (e CallError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e CallError) Unwrap() error { return e.Err }
