package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moderndash/dashboard/internal/api/middleware"
	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
	"github.com/moderndash/dashboard/internal/core/service"
)

type stubSession struct {
	identity *domain.Identity
	loading  bool
}

func (s *stubSession) ID() string { return "sid" }

func (s *stubSession) Current() (domain.Identity, bool) {
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *stubSession) Loading() bool { return s.loading }

func (s *stubSession) HasRole(required ...domain.Role) bool {
	return s.identity != nil && s.identity.Role.Satisfies(domain.Require(required...))
}

func sessionAs(role domain.Role) *stubSession {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &stubSession{identity: &domain.Identity{
		ID: "1", Email: string(role) + "@moderndash.com", Name: "Demo", Role: role, CreatedAt: now, UpdatedAt: now,
	}}
}

func newContext(req *http.Request, s ports.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if s != nil {
		middleware.SetSession(c, "sid", s)
	}
	return c, rec
}

type stubAdmin struct {
	users    []*domain.User
	projects []*domain.Project
	created  *ports.CreateUserInput
	project  *ports.CreateProjectInput
	update   *domain.UserUpdate
	fail     bool
}

func (s *stubAdmin) ListUsers(context.Context) []*domain.User { return s.users }

func (s *stubAdmin) GetUser(_ context.Context, id string) *domain.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *stubAdmin) CreateUser(_ context.Context, in ports.CreateUserInput) *domain.User {
	if s.fail {
		return nil
	}
	s.created = &in
	return &domain.User{ID: "new", Email: in.Email, Name: in.Name, Role: in.Role}
}

func (s *stubAdmin) UpdateUser(_ context.Context, id string, u domain.UserUpdate) *domain.User {
	s.update = &u
	return s.GetUser(context.Background(), id)
}

func (s *stubAdmin) DeleteUser(_ context.Context, id string) bool {
	return s.GetUser(context.Background(), id) != nil
}

func (s *stubAdmin) ListProjects(context.Context) []*domain.Project { return s.projects }

func (s *stubAdmin) CreateProject(_ context.Context, in ports.CreateProjectInput) *domain.Project {
	if s.fail {
		return nil
	}
	s.project = &in
	return &domain.Project{ID: "p-new", Title: in.Title, CreatedBy: in.CreatedBy}
}

func (s *stubAdmin) Overview(ctx context.Context) service.AdminOverview {
	return service.AdminOverview{Users: s.ListUsers(ctx)}
}
