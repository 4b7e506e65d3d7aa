package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workbridge/freelance-api/internal/core/domain"
	"github.com/workbridge/freelance-api/internal/core/ports"
)

// ResponseHandler handles HTTP requests for the bid registry.
type ResponseHandler struct {
	service ports.ResponseService
}

func NewResponseHandler(service ports.ResponseService) *ResponseHandler {
	return &ResponseHandler{service: service}
}

type createResponseRequest struct {
	ProjectID string  `json:"project_id" validate:"required"`
	Message   string  `json:"message" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending rejected cancelled"`
}

type approveRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
}

type newCountResponse struct {
	Count int `json:"count"`
}

// Create handles POST /api/responses.
//
// @Summary      Submit a response (bid)
// @Tags         responses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createResponseRequest  true  "Bid details"
// @Success      201   {object}  domain.Response
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/responses [post]
func (h *ResponseHandler) Create(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createResponseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	response, err := h.service.Create(c.Request().Context(), ports.CreateResponseInput{
		ProjectID:    req.ProjectID,
		ExecutorID:   caller.ID,
		ExecutorName: caller.Name,
		Role:         caller.Role,
		Message:      req.Message,
		Price:        req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, response)
}

// ListForProject handles GET /api/projects/:id/responses.
//
// @Summary      List responses for a project
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      200  {array}  domain.Response
// @Router       /api/projects/{id}/responses [get]
func (h *ResponseHandler) ListForProject(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	responses, err := h.service.ListForProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, responses)
}

// NewCount handles GET /api/projects/:id/responses/new-count — the badge
// number shown next to a project.
//
// @Summary      Count new responses for a project
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      200  {object}  newCountResponse
// @Router       /api/projects/{id}/responses/new-count [get]
func (h *ResponseHandler) NewCount(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	count, err := h.service.CountNewForProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCountResponse{Count: count})
}

// Mine handles GET /api/responses/mine — the executor's own bids.
//
// @Summary      List own responses
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Response
// @Router       /api/responses/mine [get]
func (h *ResponseHandler) Mine(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}
	responses, err := h.service.ListForExecutor(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, responses)
}

// SetStatus handles PATCH /api/responses/:id/status — the plain overwrite
// path, accepted excluded.
//
// @Summary      Set a response's status
// @Tags         responses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Response id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  domain.Response
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/responses/{id}/status [patch]
func (h *ResponseHandler) SetStatus(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	response, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), caller.ID, domain.ResponseStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response)
}

// Approve handles POST /api/responses/:id/approve. The approved response is
// accepted and every competitor on the project is rejected.
//
// @Summary      Approve a response
// @Tags         responses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Response id"
// @Param        body  body      approveRequest  true  "Project reference"
// @Success      200   {object}  domain.Response
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/responses/{id}/approve [post]
func (h *ResponseHandler) Approve(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req approveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	response, err := h.service.Approve(c.Request().Context(), c.Param("id"), req.ProjectID, caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response)
}

// Cancel handles POST /api/responses/:id/cancel — an executor withdrawing a
// pending bid.
//
// @Summary      Cancel an own pending response
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Response id"
// @Success      200  {object}  domain.Response
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/responses/{id}/cancel [post]
func (h *ResponseHandler) Cancel(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}
	response, err := h.service.Cancel(c.Request().Context(), c.Param("id"), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response)
}
