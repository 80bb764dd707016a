package service

import (
	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
)

// Overview is the general dashboard view model for one identity.
type Overview struct {
	User       domain.Identity   `json:"user"`
	RoleLabel  string            `json:"role_label"`
	Stats      []domain.StatCard `json:"stats"`
	Navigation []domain.NavItem  `json:"navigation"`
}

// NavigationFor filters the sidebar by the session's roles.
func NavigationFor(session ports.Session) []domain.NavItem {
	items := make([]domain.NavItem, 0, len(domain.Navigation))
	for _, item := range domain.Navigation {
		if len(item.RequiredRoles) == 0 || session.HasRole(item.RequiredRoles...) {
			items = append(items, item)
		}
	}
	return items
}

// OverviewFor builds the dashboard for the session's identity. It returns false
// when no identity is active.
func OverviewFor(session ports.Session) (*Overview, bool) {
	identity, ok := session.Current()
	if !ok {
		return nil, false
	}
	return &Overview{
		User:       identity,
		RoleLabel:  identity.Role.Label(),
		Stats:      domain.StatsFor(identity.Role),
		Navigation: NavigationFor(session),
	}, true
}
