package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workbridge/freelance-api/internal/core/domain"
	"github.com/workbridge/freelance-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for the project registry.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	Budget       float64   `json:"budget" validate:"required,gt=0"`
	Deadline     time.Time `json:"deadline" validate:"required"`
	Category     string    `json:"category" validate:"required,oneof=logo branding ui-ux illustration other"`
	Tags         []string  `json:"tags"`
	Requirements []string  `json:"requirements"`
}

type updateProjectRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Budget       *float64   `json:"budget"`
	Deadline     *time.Time `json:"deadline"`
	Category     *string    `json:"category"`
	Tags         *[]string  `json:"tags"`
	Requirements *[]string  `json:"requirements"`
	Status       *string    `json:"status"`
}

type projectMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// List handles GET /api/projects. Public: the catalog is browsable without
// an account.
//
// @Summary      List all projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}  domain.Project
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /api/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Mine handles GET /api/projects/mine — the caller's own postings.
//
// @Summary      List own projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Project
// @Router       /api/projects/mine [get]
func (h *ProjectHandler) Mine(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}
	projects, err := h.service.ListByOwner(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Create handles POST /api/projects.
//
// @Summary      Post a new project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	caller, err := ctxActor(c)
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

	project, err := h.service.Create(c.Request().Context(), caller.ID, caller.Name, caller.Role, ports.CreateProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		Budget:       req.Budget,
		Deadline:     req.Deadline,
		Category:     req.Category,
		Tags:         req.Tags,
		Requirements: req.Requirements,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// Update handles PUT /api/projects/:id. Only fields present in the payload
// change; explicit zero values are applied.
//
// @Summary      Update an owned project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  domain.Project
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	patch := ports.ProjectPatch{
		Title:        req.Title,
		Description:  req.Description,
		Budget:       req.Budget,
		Deadline:     req.Deadline,
		Category:     req.Category,
		Tags:         req.Tags,
		Requirements: req.Requirements,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		patch.Status = &status
	}

	project, err := h.service.Update(c.Request().Context(), c.Param("id"), caller.ID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /api/projects/:id.
//
// @Summary      Delete an owned project
// @Tags         projects
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), caller.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddMessage handles POST /api/projects/:id/messages — the project's
// discussion thread.
//
// @Summary      Post a project discussion message
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Project id"
// @Param        body  body      projectMessageRequest  true  "Message"
// @Success      201   {object}  domain.ProjectMessage
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/projects/{id}/messages [post]
func (h *ProjectHandler) AddMessage(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req projectMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	msg, err := h.service.AddMessage(c.Request().Context(), c.Param("id"), caller.ID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}
