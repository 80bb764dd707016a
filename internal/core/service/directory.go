package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/moderndash/dashboard/internal/core/domain"
)

// demoIdentities is the static demo directory.
var demoIdentities = []domain.Identity{
	{
		ID:        "1",
		Email:     "admin@moderndash.com",
		Name:      "Admin User",
		Role:      domain.RoleAdmin,
		Avatar:    "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:        "2",
		Email:     "user@moderndash.com",
		Name:      "Regular User",
		Role:      domain.RoleUser,
		Avatar:    "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150",
		CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:        "3",
		Email:     "moderator@moderndash.com",
		Name:      "Moderator",
		Role:      domain.RoleModerator,
		Avatar:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150",
		CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	},
}

// DemoDirectory is an in-memory user directory sharing one demo secret. The
// secret is stored as a salted bcrypt hash per entry.
type DemoDirectory struct {
	credentials map[string]domain.Credential
}

// NewDemoDirectory hashes secret for every demo identity. cost <= 0 selects bcrypt.DefaultCost.
func NewDemoDirectory(secret string, cost int) (*DemoDirectory, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	now := time.Now().UTC()

	d := &DemoDirectory{credentials: make(map[string]domain.Credential, len(demoIdentities))}
	for _, identity := range demoIdentities {
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
		if err != nil {
			return nil, fmt.Errorf("hash demo secret: %w", err)
		}
		identity.UpdatedAt = now
		d.credentials[identity.Email] = domain.Credential{Identity: identity, PasswordHash: string(hash)}
	}
	return d, nil
}

// FindByEmail returns the credential whose email matches exactly.
func (d *DemoDirectory) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	cred, ok := d.credentials[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &cred, nil
}

// Accounts lists the demo identities, ordered as shown on the login view.
func (d *DemoDirectory) Accounts() []domain.Identity {
	order := []domain.Role{domain.RoleAdmin, domain.RoleModerator, domain.RoleUser}
	out := make([]domain.Identity, 0, len(d.credentials))
	for _, role := range order {
		for _, identity := range demoIdentities {
			if identity.Role == role {
				out = append(out, d.credentials[identity.Email].Identity)
			}
		}
	}
	return out
}
