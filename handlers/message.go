package handlers

import (
	"errors"
	"legal_aid_app_go/config"
	"legal_aid_app_go/middleware"
	"legal_aid_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// MessageHandler serves the messaging subgraph.
type MessageHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMessageHandler(db *gorm.DB, cfg *config.Config) *MessageHandler {
	return &MessageHandler{DB: db, Cfg: cfg}
}

type sendMessageRequest struct {
	RecipientID string  `json:"recipient_id"`
	ThreadID    *string `json:"thread_id,omitempty"`
	Subject     string  `json:"subject,omitempty"`
	Content     string  `json:"content"`
}

// Send creates a message from the authenticated user.
func (h *MessageHandler) Send(c echo.Context) error {
	sender := middleware.GetCurrentUser(c)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.RecipientID == "" || req.Content == "" {
		return respondError(c, http.StatusBadRequest, "Recipient and content are required")
	}

	message, err := services.SendMessage(h.DB, services.SendMessageInput{
		SenderID:    sender.ID,
		RecipientID: req.RecipientID,
		ThreadID:    req.ThreadID,
		Subject:     req.Subject,
		Content:     req.Content,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Recipient or thread not found")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}

	return respondData(c, http.StatusCreated, message)
}

type reactionRequest struct {
	Type string `json:"type"`
}

// React records a reaction on a message; repeating it is a no-op.
func (h *MessageHandler) React(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req reactionRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Type == "" {
		return respondError(c, http.StatusBadRequest, "Reaction type is required")
	}

	reaction, err := services.AddReaction(h.DB, c.Param("id"), user.ID, req.Type)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Message not found")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}

	return respondData(c, http.StatusOK, reaction)
}

// Archive marks a message archived.
func (h *MessageHandler) Archive(c echo.Context) error {
	if err := services.ArchiveMessage(h.DB, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Message not found")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}
	return respondData(c, http.StatusOK, map[string]string{"message": "Message archived"})
}

// Attach uploads a file and links it to a message.
func (h *MessageHandler) Attach(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, http.StatusBadRequest, "A file is required")
	}

	attachment, err := services.AddAttachment(c.Request().Context(), h.DB, c.Param("id"), file)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Message not found")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}

	return respondData(c, http.StatusCreated, attachment)
}

// GetThread returns a thread with its messages and participants.
func (h *MessageHandler) GetThread(c echo.Context) error {
	thread, err := services.GetThread(h.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Thread not found")
		}
		return respondInternal(c, h.Cfg.Environment, err)
	}
	return respondData(c, http.StatusOK, thread)
}
