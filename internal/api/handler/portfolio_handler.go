package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workbridge/freelance-api/internal/core/ports"
)

// PortfolioHandler handles HTTP requests for executor portfolios.
type PortfolioHandler struct {
	service ports.PortfolioService
}

func NewPortfolioHandler(service ports.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

type portfolioItemRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

// Get handles GET /api/portfolio and GET /api/portfolio/:userId.
//
// @Summary      Get a portfolio
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string  false  "User id (defaults to caller)"
// @Success      200  {object}  domain.Portfolio
// @Router       /api/portfolio [get]
func (h *PortfolioHandler) Get(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}

	userID := c.Param("userId")
	if userID == "" {
		userID = caller.ID
	}

	portfolio, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, portfolio)
}

// AddItem handles POST /api/portfolio.
//
// @Summary      Add a portfolio item
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      portfolioItemRequest  true  "Item details"
// @Success      201   {object}  domain.PortfolioItem
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/portfolio [post]
func (h *PortfolioHandler) AddItem(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req portfolioItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	item, err := h.service.AddItem(c.Request().Context(), caller.ID, caller.Role, ports.PortfolioItemInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /api/portfolio/:itemId.
//
// @Summary      Update a portfolio item
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string                true  "Item id"
// @Param        body    body      portfolioItemRequest  true  "Item details"
// @Success      200     {object}  domain.PortfolioItem
// @Failure      404     {object}  map[string]string
// @Router       /api/portfolio/{itemId} [put]
func (h *PortfolioHandler) UpdateItem(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req portfolioItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	item, err := h.service.UpdateItem(c.Request().Context(), caller.ID, c.Param("itemId"), ports.PortfolioItemInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/portfolio/:itemId.
//
// @Summary      Delete a portfolio item
// @Tags         portfolio
// @Security     BearerAuth
// @Param        itemId  path  string  true  "Item id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/portfolio/{itemId} [delete]
func (h *PortfolioHandler) DeleteItem(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteItem(c.Request().Context(), caller.ID, c.Param("itemId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
