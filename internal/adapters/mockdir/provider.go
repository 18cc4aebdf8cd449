// Package mockdir provides a config-driven AuthProvider for local
// development. Accounts live in memory; one is enrolled in 2FA so the
// second-factor login path can be exercised without a real directory.
package mockdir

import (
	"context"
	"errors"
	"strings"
	"sync"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
	"github.com/caredesk/clinic-portal/internal/ports"
)

// ErrInvalidCredentials is returned for an unknown email or wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Account is one directory entry with its password.
type Account struct {
	Password  string
	TwoFactor bool
	Profile   domainauth.Profile
}

// Provider implements ports.AuthProvider against an in-memory account set.
type Provider struct {
	mu       sync.RWMutex
	accounts map[string]Account // keyed by lower-cased email
}

// NewProvider creates a provider with the given accounts. With none given it
// seeds one account per role, password "password", plus a 2FA-enrolled admin.
func NewProvider(accounts ...Account) *Provider {
	p := &Provider{accounts: make(map[string]Account)}
	if len(accounts) == 0 {
		accounts = defaultAccounts()
	}
	for _, a := range accounts {
		p.accounts[strings.ToLower(a.Profile.Email)] = a
	}
	return p
}

// Authenticate checks credentials against the in-memory directory.
func (p *Provider) Authenticate(_ context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	p.mu.RLock()
	account, ok := p.accounts[strings.ToLower(strings.TrimSpace(creds.Email))]
	p.mu.RUnlock()
	if !ok || account.Password != creds.Password {
		return ports.AuthResult{}, ErrInvalidCredentials
	}
	if account.TwoFactor {
		return ports.AuthResult{TwoFactorRequired: true}, nil
	}
	profile := account.Profile
	return ports.AuthResult{Profile: &profile}, nil
}

// ProfileByID looks up a directory profile by its ID.
func (p *Provider) ProfileByID(_ context.Context, userID string) (*domainauth.Profile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, a := range p.accounts {
		if a.Profile.ID == userID {
			profile := a.Profile
			return &profile, nil
		}
	}
	return nil, errors.New("profile not found")
}

func defaultAccounts() []Account {
	mk := func(id, name, username, email, role string) Account {
		return Account{
			Password: "password",
			Profile: domainauth.Profile{
				ID:       id,
				Name:     name,
				Username: username,
				Email:    email,
				Role:     domainauth.ProfileRole{Name: role},
			},
		}
	}
	admin2FA := mk("mock-admin-2fa", "Secure Admin", "adminsec", "admin-2fa@clinic.local", "Administrator")
	admin2FA.TwoFactor = true
	return []Account{
		mk("mock-admin", "Ada Admin", "ada", "admin@clinic.local", "Administrator"),
		mk("mock-doctor", "Dan Doctor", "dan", "doctor@clinic.local", "Doctor"),
		mk("mock-lab", "Lia Lab", "lia", "lab@clinic.local", "Lab Technician"),
		mk("mock-pharm", "Pam Pharmacist", "pam", "pharmacist@clinic.local", "Pharmacist"),
		mk("mock-patient", "Pat Patient", "pat", "patient@clinic.local", "Patient"),
		admin2FA,
	}
}
