package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/moderndash/dashboard/internal/core/domain"
)

// snapshotKeyPrefix namespaces persisted identities in the snapshot store.
const snapshotKeyPrefix = "moderndash_user:"

// SnapshotKey returns the snapshot store key of a session id.
func SnapshotKey(sessionID string) string {
	return snapshotKeyPrefix + sessionID
}

// identitySnapshot is the persisted form of an Identity. Timestamps are kept as
// ISO-8601 strings so that a bad value surfaces as a parse error, not a zero time.
type identitySnapshot struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func encodeSnapshot(identity domain.Identity) ([]byte, error) {
	identity = identity.Normalized()
	return json.Marshal(identitySnapshot{
		ID:        identity.ID,
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      string(identity.Role),
		Avatar:    identity.Avatar,
		CreatedAt: identity.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: identity.UpdatedAt.Format(time.RFC3339Nano),
	})
}

// decodeSnapshot rebuilds an Identity, failing on malformed JSON, unparseable
// timestamps, unknown roles or any missing required field.
func decodeSnapshot(data []byte) (domain.Identity, error) {
	var snap identitySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidIdentity, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, snap.CreatedAt)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: createdAt: %v", domain.ErrInvalidIdentity, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, snap.UpdatedAt)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: updatedAt: %v", domain.ErrInvalidIdentity, err)
	}
	role, err := domain.ParseRole(snap.Role)
	if err != nil {
		return domain.Identity{}, err
	}

	identity := domain.Identity{
		ID:        snap.ID,
		Email:     snap.Email,
		Name:      snap.Name,
		Role:      role,
		Avatar:    snap.Avatar,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}
	if err := identity.Validate(); err != nil {
		return domain.Identity{}, err
	}
	return identity, nil
}
