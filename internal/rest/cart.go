package rest

import (
	"context"
	"net/http"
	"pickwise/domain"
	"strconv"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	CartHandler struct {
		validate    *validator.Validate
		cartService CartService
		timeout     time.Duration
	}

	CartService interface {
		AddItem(ctx context.Context, userID uint, laptopID uuid.UUID, quantity int) (domain.CartItem, error)
		GetCart(ctx context.Context, userID uint) ([]domain.CartItem, error)
		UpdateQuantity(ctx context.Context, userID uint, itemID uint, quantity int) error
		RemoveItem(ctx context.Context, userID uint, itemID uint) error
		Clear(ctx context.Context, userID uint) error
	}

	CartAddRequest struct {
		LaptopID string `json:"laptop_id" validate:"required,uuid4"`
		Quantity int    `json:"quantity" validate:"required,gt=0"`
	}

	CartUpdateRequest struct {
		Quantity int `json:"quantity" validate:"required,gt=0"`
	}
)

func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{
		validate:    validator.New(),
		cartService: svc,
		timeout:     10 * time.Second,
	}
}

// POST /api/v1/cart
func (h *CartHandler) Add(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CartAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	laptopID, err := uuid.Parse(req.LaptopID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid laptop ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.cartService.AddItem(ctx, userID, laptopID, req.Quantity)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

// GET /api/v1/cart
func (h *CartHandler) Get(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.cartService.GetCart(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

// PUT /api/v1/cart/:id
func (h *CartHandler) Update(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid cart item ID"})
	}

	var req CartUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.UpdateQuantity(ctx, userID, uint(itemID), req.Quantity); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Cart item updated",
	})
}

// DELETE /api/v1/cart/:id
func (h *CartHandler) Remove(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid cart item ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.RemoveItem(ctx, userID, uint(itemID)); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Cart item removed",
	})
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.Clear(ctx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Cart cleared",
	})
}
