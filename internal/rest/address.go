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
	"github.com/labstack/echo/v4"
)

type (
	AddressHandler struct {
		validate       *validator.Validate
		addressService AddressService
		timeout        time.Duration
	}

	AddressService interface {
		Create(ctx context.Context, userID uint, address *domain.Address) (domain.Address, error)
		ListByUser(ctx context.Context, userID uint) ([]domain.Address, error)
		Update(ctx context.Context, userID uint, id uint, updated *domain.Address) (domain.Address, error)
		Delete(ctx context.Context, userID uint, id uint) error
	}

	AddressRequest struct {
		Label     string `json:"label"`
		Recipient string `json:"recipient" validate:"required"`
		Phone     string `json:"phone"`
		Line1     string `json:"line1" validate:"required"`
		Line2     string `json:"line2"`
		City      string `json:"city"`
		State     string `json:"state"`
		Postcode  string `json:"postcode"`
		IsDefault bool   `json:"is_default"`
	}
)

func NewAddressHandler(svc AddressService) *AddressHandler {
	return &AddressHandler{
		validate:       validator.New(),
		addressService: svc,
		timeout:        10 * time.Second,
	}
}

func (r AddressRequest) toDomain() domain.Address {
	return domain.Address{
		Label:     r.Label,
		Recipient: r.Recipient,
		Phone:     r.Phone,
		Line1:     r.Line1,
		Line2:     r.Line2,
		City:      r.City,
		State:     r.State,
		Postcode:  r.Postcode,
		IsDefault: r.IsDefault,
	}
}

// POST /api/v1/addresses
func (h *AddressHandler) Create(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	address := req.toDomain()
	created, err := h.addressService.Create(ctx, userID, &address)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

// GET /api/v1/addresses
func (h *AddressHandler) List(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	addresses, err := h.addressService.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(addresses))
}

// PUT /api/v1/addresses/:id
func (h *AddressHandler) Update(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid address ID"})
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	address := req.toDomain()
	updated, err := h.addressService.Update(ctx, userID, uint(addressID), &address)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

// DELETE /api/v1/addresses/:id
func (h *AddressHandler) Delete(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid address ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.addressService.Delete(ctx, userID, uint(addressID)); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Address deleted",
	})
}
