package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
)

// AdminService fronts the users and projects repositories. Every failure is
// logged and degrades to an empty result so views can render "nothing to show".
type AdminService struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	metrics  ports.Metrics
	logger   zerolog.Logger
}

// NewAdminService wires an AdminService. rec may be nil.
func NewAdminService(users ports.UserRepository, projects ports.ProjectRepository, rec ports.Metrics, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, projects: projects, metrics: orNop(rec), logger: logger}
}

func (s *AdminService) fail(op string, err error) {
	s.metrics.DatabaseError(op)
	s.logger.Error().Err(err).Str("operation", op).Msg("database call failed")
}

func (s *AdminService) ListUsers(ctx context.Context) []*domain.User {
	users, err := s.users.List(ctx)
	if err != nil {
		s.fail("list_users", err)
		return []*domain.User{}
	}
	if users == nil {
		return []*domain.User{}
	}
	return users
}

func (s *AdminService) GetUser(ctx context.Context, id string) *domain.User {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.fail("get_user", err)
		}
		return nil
	}
	return user
}

func (s *AdminService) CreateUser(ctx context.Context, input ports.CreateUserInput) *domain.User {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	status := input.Status
	if status == "" {
		status = domain.UserStatusActive
	}
	now := time.Now().UTC()

	created, err := s.users.Create(ctx, &domain.User{
		Email:     input.Email,
		Name:      input.Name,
		Role:      role,
		AvatarURL: input.AvatarURL,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.fail("create_user", err)
		return nil
	}
	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created
}

func (s *AdminService) UpdateUser(ctx context.Context, id string, update domain.UserUpdate) *domain.User {
	updated, err := s.users.Update(ctx, id, update)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.fail("update_user", err)
		}
		return nil
	}
	return updated
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) bool {
	if err := s.users.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.fail("delete_user", err)
		}
		return false
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return true
}

func (s *AdminService) ListProjects(ctx context.Context) []*domain.Project {
	projects, err := s.projects.List(ctx)
	if err != nil {
		s.fail("list_projects", err)
		return []*domain.Project{}
	}
	if projects == nil {
		return []*domain.Project{}
	}
	return projects
}

func (s *AdminService) CreateProject(ctx context.Context, input ports.CreateProjectInput) *domain.Project {
	status := input.Status
	if status == "" {
		status = domain.ProjectActive
	}
	now := time.Now().UTC()

	created, err := s.projects.Create(ctx, &domain.Project{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.fail("create_project", err)
		return nil
	}
	return created
}

// AdminOverview is the admin panel's view model.
type AdminOverview struct {
	Stats []domain.StatCard `json:"stats"`
	Users []*domain.User    `json:"users"`
}

// Overview computes the admin panel cards from the users table.
func (s *AdminService) Overview(ctx context.Context) AdminOverview {
	users := s.ListUsers(ctx)

	var active, admins int
	for _, u := range users {
		if u.Status == domain.UserStatusActive {
			active++
		}
		if u.Role == domain.RoleAdmin {
			admins++
		}
	}

	return AdminOverview{
		Stats: []domain.StatCard{
			{Title: "Total Users", Value: strconv.Itoa(len(users)), Color: "bg-blue-500"},
			{Title: "Active Users", Value: strconv.Itoa(active), Color: "bg-green-500"},
			{Title: "Administrators", Value: strconv.Itoa(admins), Color: "bg-red-500"},
			{Title: "System Uptime", Value: "99.9%", Color: "bg-purple-500"},
		},
		Users: users,
	}
}
