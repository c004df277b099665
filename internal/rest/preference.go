package rest

import (
	"context"
	"net/http"
	"pickwise/domain"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PreferenceHandler struct {
		validate    *validator.Validate
		prefService PreferenceService
		timeout     time.Duration
	}

	PreferenceService interface {
		GetByUserID(ctx context.Context, userID uint) (domain.UserPreference, error)
		Update(ctx context.Context, userID uint, budget, purpose, screenSize string, priorityFactors, preferredBrands []string) (domain.UserPreference, error)
	}

	PreferenceUpdateRequest struct {
		Budget          string   `json:"budget"`
		Purpose         string   `json:"purpose"`
		ScreenSize      string   `json:"screen_size"`
		PriorityFactors []string `json:"priority_factors" validate:"max=6"`
		PreferredBrands []string `json:"preferred_brands" validate:"max=10"`
	}
)

func NewPreferenceHandler(svc PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		validate:    validator.New(),
		prefService: svc,
		timeout:     10 * time.Second,
	}
}

// GET /api/v1/preferences
func (h *PreferenceHandler) Get(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pref, err := h.prefService.GetByUserID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(pref))
}

// PUT /api/v1/preferences
func (h *PreferenceHandler) Update(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req PreferenceUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pref, err := h.prefService.Update(ctx, userID, req.Budget, req.Purpose, req.ScreenSize, req.PriorityFactors, req.PreferredBrands)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(pref))
}
