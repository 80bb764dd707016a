package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is a coarse permission tier gating dashboard visibility.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// ParseRole converts a raw role string into a known Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidIdentity, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// Label returns the human-readable role name shown in badges and headers.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleModerator:
		return "Moderator"
	case RoleUser:
		return "User"
	default:
		return string(r)
	}
}

// Identity is the authenticated user's profile for the current session.
// It is replaced wholesale on login and logout, never patched.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks that every required field is present. Avatar is optional.
func (i Identity) Validate() error {
	switch {
	case i.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidIdentity)
	case i.Email == "":
		return fmt.Errorf("%w: missing email", ErrInvalidIdentity)
	case i.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidIdentity)
	case !i.Role.Valid():
		return fmt.Errorf("%w: unknown role %q", ErrInvalidIdentity, i.Role)
	case i.CreatedAt.IsZero():
		return fmt.Errorf("%w: missing createdAt", ErrInvalidIdentity)
	case i.UpdatedAt.IsZero():
		return fmt.Errorf("%w: missing updatedAt", ErrInvalidIdentity)
	}
	return nil
}

// Normalized returns a copy with timestamps in UTC and the monotonic reading stripped,
// so that an in-memory identity compares equal to its persisted snapshot.
func (i Identity) Normalized() Identity {
	i.CreatedAt = i.CreatedAt.Round(0).UTC()
	i.UpdatedAt = i.UpdatedAt.Round(0).UTC()
	return i
}

// Credential pairs an Identity with the password hash used to verify it.
type Credential struct {
	Identity     Identity
	PasswordHash string
}

// UserStatus is the account status stored in the users table.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is a row of the users table.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	Status    UserStatus `json:"status"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UserUpdate carries the optional fields of a partial user update.
type UserUpdate struct {
	Email     *string
	Name      *string
	Role      *Role
	AvatarURL *string
	Status    *UserStatus
}

// Empty reports whether the update carries no field at all.
func (u UserUpdate) Empty() bool {
	return u.Email == nil && u.Name == nil && u.Role == nil && u.AvatarURL == nil && u.Status == nil
}
