package rest

import (
	"context"
	"net/http"
	"pickwise/domain"
	"pickwise/pkg/metrics"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	ChatHandler struct {
		validate    *validator.Validate
		chatService ChatService
	}

	ChatService interface {
		Chat(ctx context.Context, userID uint, conversationID uuid.UUID, query string) domain.ChatReply
	}

	ChatRequest struct {
		// Empty means a one-off exchange: answered, never persisted.
		ConversationID string `json:"conversation_id" validate:"omitempty,uuid4"`
		Message        string `json:"message" validate:"required,max=2000"`
	}
)

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{
		validate:    validator.New(),
		chatService: svc,
	}
}

// POST /api/v1/chat
func (h *ChatHandler) Chat(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	conversationID := uuid.Nil
	if req.ConversationID != "" {
		var err error
		conversationID, err = uuid.Parse(req.ConversationID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid conversation ID"})
		}
	}

	metrics.ChatRequests.Inc()
	start := time.Now()

	reply := h.chatService.Chat(c.Request().Context(), userID, conversationID, req.Message)

	metrics.ChatLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reply))
}
