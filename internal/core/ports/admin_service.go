package ports

import (
	"context"

	"github.com/moderndash/dashboard/internal/core/domain"
)

// CreateUserInput carries the fields of a new users row.
type CreateUserInput struct {
	Email     string
	Name      string
	Role      domain.Role
	AvatarURL string
	Status    domain.UserStatus
}

// CreateProjectInput carries the fields of a new projects row.
type CreateProjectInput struct {
	Title       string
	Description string
	Status      domain.ProjectStatus
	CreatedBy   string
}

// AdminService exposes the database collaborator to handlers. Failures are logged by the
// implementation and degrade to empty lists, nil rows or false.
type AdminService interface {
	ListUsers(ctx context.Context) []*domain.User
	GetUser(ctx context.Context, id string) *domain.User
	CreateUser(ctx context.Context, input CreateUserInput) *domain.User
	UpdateUser(ctx context.Context, id string, update domain.UserUpdate) *domain.User
	DeleteUser(ctx context.Context, id string) bool
	ListProjects(ctx context.Context) []*domain.Project
	CreateProject(ctx context.Context, input CreateProjectInput) *domain.Project
}
