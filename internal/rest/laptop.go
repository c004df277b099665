package rest

import (
	"context"
	"net/http"
	"pickwise/domain"
	"pickwise/pkg/logger"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	LaptopHandler struct {
		validate      *validator.Validate
		laptopService LaptopService
		timeout       time.Duration
	}

	LaptopService interface {
		Create(ctx context.Context, laptop *domain.Laptop) (domain.Laptop, error)
		ImportBatch(ctx context.Context, laptops []domain.Laptop) (int, error)
		GetByID(ctx context.Context, id uuid.UUID) (domain.Laptop, error)
		GetAll(ctx context.Context) ([]domain.Laptop, error)
		Search(ctx context.Context, filter domain.LaptopFilter, limit int) ([]domain.Laptop, error)
	}

	LaptopSearchQuery struct {
		Brand    string   `query:"brand"`
		PriceMin *float64 `query:"price_min"`
		PriceMax *float64 `query:"price_max"`
		RAMGBMin *int     `query:"ram_gb_min"`
		Limit    int      `query:"limit"`
	}
)

func NewLaptopHandler(svc LaptopService) *LaptopHandler {
	return &LaptopHandler{
		validate:      validator.New(),
		laptopService: svc,
		timeout:       10 * time.Second,
	}
}

// GET /api/v1/laptops
func (h *LaptopHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	laptops, err := h.laptopService.GetAll(ctx)
	if err != nil {
		logger.Error("failed to get laptops", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(laptops))
}

// GET /api/v1/laptops/:id
func (h *LaptopHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid laptop ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	laptop, err := h.laptopService.GetByID(ctx, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(laptop))
}

// GET /api/v1/laptops/search?brand=lenovo&price_max=4000
func (h *LaptopHandler) Search(c echo.Context) error {
	var q LaptopSearchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	filter := domain.LaptopFilter{
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		RAMGBMin: q.RAMGBMin,
	}
	if q.Brand != "" {
		filter.Brands = []string{q.Brand}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	laptops, err := h.laptopService.Search(ctx, filter, q.Limit)
	if err != nil {
		logger.Error("failed to search laptops", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(laptops))
}

// POST /api/v1/admin/laptops
func (h *LaptopHandler) Create(c echo.Context) error {
	var laptop domain.Laptop
	if err := c.Bind(&laptop); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.laptopService.Create(ctx, &laptop)
	if err != nil {
		logger.Error("failed to create laptop", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

// POST /api/v1/admin/laptops/import
func (h *LaptopHandler) Import(c echo.Context) error {
	var laptops []domain.Laptop
	if err := c.Bind(&laptops); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	// Imports embed every row, give them more room than a normal request.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Minute)
	defer cancel()

	count, err := h.laptopService.ImportBatch(ctx, laptops)
	if err != nil {
		logger.Error("failed to import laptops", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Import successful",
		"imported": count,
	})
}
