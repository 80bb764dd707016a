package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
)

type UserHandler struct {
	admin ports.AdminService
}

func NewUserHandler(admin ports.AdminService) *UserHandler {
	return &UserHandler{admin: admin}
}

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=admin moderator user"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	Status    string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type updateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Name      *string `json:"name" validate:"omitempty,min=1"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin moderator user"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	Status    *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r updateUserRequest) toUpdate() domain.UserUpdate {
	u := domain.UserUpdate{Email: r.Email, Name: r.Name, AvatarURL: r.AvatarURL}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		u.Role = &role
	}
	if r.Status != nil {
		status := domain.UserStatus(*r.Status)
		u.Status = &status
	}
	return u
}

// List returns every user, newest first.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Security     SessionCookie
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.admin.ListUsers(c.Request().Context()))
}

// Get returns a single user.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Security     SessionCookie
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user := h.admin.GetUser(c.Request().Context(), c.Param("id"))
	if user == nil {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, user)
}

// Create adds a user. Role defaults to user and status to active.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Security     SessionCookie
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := h.admin.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Email:     req.Email,
		Name:      req.Name,
		Role:      domain.Role(req.Role),
		AvatarURL: req.AvatarURL,
		Status:    domain.UserStatus(req.Status),
	})
	if user == nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "user could not be created"})
	}
	return c.JSON(http.StatusCreated, user)
}

// Update changes the supplied fields of a user.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     SessionCookie
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	update := req.toUpdate()
	if update.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "nothing to update"})
	}

	user := h.admin.UpdateUser(c.Request().Context(), c.Param("id"), update)
	if user == nil {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user.
//
// @Summary      Delete user
// @Tags         users
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     SessionCookie
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if !h.admin.DeleteUser(c.Request().Context(), c.Param("id")) {
		return domain.ErrUserNotFound
	}
	return c.NoContent(http.StatusNoContent)
}
