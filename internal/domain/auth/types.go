// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import "time"

// Role is the application authorization role slug.
// Keep string form for easy persistence and cookies.
// Valid values are the closed set defined as constants below.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDoctor     Role = "doctor"
	RoleLab        Role = "lab"
	RolePharmacist Role = "pharmacist"
	RolePatient    Role = "patient"
)

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleLab, RolePharmacist, RolePatient:
		return true
	default:
		return false
	}
}

// Label returns the human-readable label for the role slug.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleDoctor:
		return "Doctor"
	case RoleLab:
		return "Lab Technician"
	case RolePharmacist:
		return "Pharmacist"
	case RolePatient:
		return "Patient"
	default:
		return ""
	}
}

// Identity is the normalized representation of the signed-in subject.
// The profile mapper produces it from a remote directory profile; it is
// immutable once constructed and replaced as a whole on state changes.
type Identity struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	RoleName  string // human-readable label, usually the remote display name
	Phone     string // optional
	Address   string // optional
	AvatarURL string // optional
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier (random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	RoleName  string    `json:"role_name"`
	ClinicID  string    `json:"clinic_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity projects the session back onto the domain Identity shape.
func (s Session) Identity() Identity {
	return Identity{
		ID:       s.UserID,
		Name:     s.Name,
		Email:    s.Email,
		Role:     s.Role,
		RoleName: s.RoleName,
	}
}

// IsPatient reports whether the session carries the least-privileged role.
func (s Session) IsPatient() bool { return s.Role == RolePatient }
