package auth

import "strings"

// Profile is the raw subject record as returned by the remote directory.
// Field names follow the remote JSON contract.
type Profile struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     ProfileRole `json:"role"`
	Phone    string      `json:"phone,omitempty"`
	Address  string      `json:"address,omitempty"`
	Avatar   string      `json:"avatar,omitempty"`
}

// ProfileRole is the nested role object on a directory profile.
type ProfileRole struct {
	Name string `json:"name"`
}

// roleSlugs maps normalized (lower-cased, trimmed) remote role names to
// application role slugs. Anything not listed falls back to patient so an
// unrecognized role can never grant elevated access.
var roleSlugs = map[string]Role{
	"admin":          RoleAdmin,
	"administrator":  RoleAdmin,
	"doctor":         RoleDoctor,
	"lab technician": RoleLab,
	"lab-technician": RoleLab,
	"pharmacist":     RolePharmacist,
	"patient":        RolePatient,
}

// MapProfile translates a remote directory profile into the normalized
// Identity used everywhere else in the application. A nil profile yields a
// nil Identity. The function is pure: no I/O, no mutation of its input.
func MapProfile(p *Profile) *Identity {
	if p == nil {
		return nil
	}

	role, ok := roleSlugs[strings.ToLower(strings.TrimSpace(p.Role.Name))]
	if !ok {
		role = RolePatient
	}

	name := p.Name
	if name == "" {
		name = p.Username
	}
	if name == "" {
		name = "User"
	}

	return &Identity{
		ID:        p.ID,
		Name:      name,
		Email:     p.Email,
		Role:      role,
		RoleName:  p.Role.Name,
		Phone:     p.Phone,
		Address:   p.Address,
		AvatarURL: p.Avatar,
	}
}
