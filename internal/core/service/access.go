package service

import "github.com/moderndash/dashboard/internal/core/domain"

// HasRole reports whether identity satisfies any of the required roles through
// its role's grant set. A nil identity satisfies nothing.
func HasRole(identity *domain.Identity, required ...domain.Role) bool {
	if identity == nil {
		return false
	}
	return identity.Role.Satisfies(domain.Require(required...))
}
