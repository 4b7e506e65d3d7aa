package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workbridge/freelance-api/internal/core/ports"
)

// ChatHandler handles HTTP requests for the chat registry.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type openChatRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
}

type chatMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type unreadResponse struct {
	Count int `json:"count"`
}

// Open handles POST /api/chats — get-or-create the thread with another user.
//
// @Summary      Open (or reuse) a chat with another user
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      openChatRequest  true  "The other participant"
// @Success      200   {object}  domain.Chat
// @Failure      400   {object}  map[string]string
// @Router       /api/chats [post]
func (h *ChatHandler) Open(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req openChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	chat, err := h.service.GetOrCreate(c.Request().Context(), caller.ID, req.ParticipantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chat)
}

// List handles GET /api/chats — the caller's threads.
//
// @Summary      List own chats
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Chat
// @Router       /api/chats [get]
func (h *ChatHandler) List(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}
	chats, err := h.service.ListForUser(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chats)
}

// Get handles GET /api/chats/:id.
//
// @Summary      Get a chat
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Chat id"
// @Success      200  {object}  domain.Chat
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/chats/{id} [get]
func (h *ChatHandler) Get(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}
	chat, err := h.service.Get(c.Request().Context(), c.Param("id"), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chat)
}

// SendMessage handles POST /api/chats/:id/messages.
//
// @Summary      Send a chat message
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Chat id"
// @Param        body  body      chatMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/chats/{id}/messages [post]
func (h *ChatHandler) SendMessage(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req chatMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	msg, err := h.service.SendMessage(c.Request().Context(), c.Param("id"), caller.ID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// Unread handles GET /api/chats/:id/unread.
//
// @Summary      Count unread messages in a chat
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Chat id"
// @Success      200  {object}  unreadResponse
// @Router       /api/chats/{id}/unread [get]
func (h *ChatHandler) Unread(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}
	count, err := h.service.CountUnread(c.Request().Context(), c.Param("id"), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadResponse{Count: count})
}

// MarkRead handles POST /api/chats/:id/read. Idempotent.
//
// @Summary      Mark a chat's foreign messages as read
// @Tags         chats
// @Security     BearerAuth
// @Param        id  path  string  true  "Chat id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/chats/{id}/read [post]
func (h *ChatHandler) MarkRead(c echo.Context) error {
	caller, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.MarkRead(c.Request().Context(), c.Param("id"), caller.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
