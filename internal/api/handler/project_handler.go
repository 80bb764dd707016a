package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
)

type ProjectHandler struct {
	admin ports.AdminService
}

func NewProjectHandler(admin ports.AdminService) *ProjectHandler {
	return &ProjectHandler{admin: admin}
}

type createProjectRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=active completed paused"`
}

// List returns projects newest first with their owner.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}  domain.Project
// @Security     SessionCookie
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.admin.ListProjects(c.Request().Context()))
}

// Create adds a project owned by the current identity.
//
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "New project"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Security     SessionCookie
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	_, identity, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	project := h.admin.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.ProjectStatus(req.Status),
		CreatedBy:   identity.ID,
	})
	if project == nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "project could not be created"})
	}
	return c.JSON(http.StatusCreated, project)
}
