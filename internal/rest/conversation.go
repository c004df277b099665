package rest

import (
	"context"
	"net/http"
	"pickwise/domain"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	ConversationHandler struct {
		validate    *validator.Validate
		convService ConversationService
		timeout     time.Duration
	}

	ConversationService interface {
		Start(ctx context.Context, userID uint, title string) (domain.Conversation, error)
		GetByID(ctx context.Context, userID uint, id uuid.UUID) (domain.Conversation, error)
		ListByUser(ctx context.Context, userID uint) ([]domain.Conversation, error)
		Delete(ctx context.Context, userID uint, id uuid.UUID) error
	}

	ConversationStartRequest struct {
		Title string `json:"title" validate:"max=120"`
	}
)

func NewConversationHandler(svc ConversationService) *ConversationHandler {
	return &ConversationHandler{
		validate:    validator.New(),
		convService: svc,
		timeout:     10 * time.Second,
	}
}

// POST /api/v1/conversations
func (h *ConversationHandler) Start(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ConversationStartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	conv, err := h.convService.Start(ctx, userID, req.Title)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(conv))
}

// GET /api/v1/conversations
func (h *ConversationHandler) List(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	convs, err := h.convService.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(convs))
}

// GET /api/v1/conversations/:id
func (h *ConversationHandler) GetByID(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid conversation ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	conv, err := h.convService.GetByID(ctx, userID, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(conv))
}

// DELETE /api/v1/conversations/:id
func (h *ConversationHandler) Delete(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid conversation ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.convService.Delete(ctx, userID, id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Conversation deleted",
	})
}
