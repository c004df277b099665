package laptop

import (
	"context"
	"errors"
	"fmt"
	"pickwise/domain"
	"pickwise/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type LaptopRepository interface {
	Create(ctx context.Context, laptop *domain.Laptop) error
	CreateBatch(ctx context.Context, laptops []domain.Laptop) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Laptop, error)
	FindAll(ctx context.Context) ([]domain.Laptop, error)
	FindByFilter(ctx context.Context, filter domain.LaptopFilter, limit int) ([]domain.Laptop, error)
}

// VectorIndexer keeps the similarity index in sync with the catalog.
type VectorIndexer interface {
	IndexLaptop(ctx context.Context, laptopID string, description string) error
}

// RangeInvalidator is notified when catalog writes may have moved the
// min/max of any scored attribute.
type RangeInvalidator interface {
	Invalidate()
}

type LaptopService struct {
	laptopRepo LaptopRepository
	indexer    VectorIndexer
	ranges     RangeInvalidator
	validate   *validator.Validate
}

func NewLaptopService(
	laptopRepo LaptopRepository,
	indexer VectorIndexer,
	ranges RangeInvalidator,
	validate *validator.Validate,
) *LaptopService {
	return &LaptopService{
		laptopRepo: laptopRepo,
		indexer:    indexer,
		ranges:     ranges,
		validate:   validate,
	}
}

func (s *LaptopService) Create(ctx context.Context, laptop *domain.Laptop) (domain.Laptop, error) {
	if err := s.validateLaptop(laptop); err != nil {
		return domain.Laptop{}, err
	}

	if laptop.ID == uuid.Nil {
		laptop.ID = uuid.New()
	}

	if err := s.laptopRepo.Create(ctx, laptop); err != nil {
		return domain.Laptop{}, err
	}

	s.ranges.Invalidate()

	if err := s.indexer.IndexLaptop(ctx, laptop.ID.String(), describe(*laptop)); err != nil {
		// Catalog row exists; the laptop stays reachable through the
		// filter path until reindexed.
		logger.Warn("failed to index laptop", "laptop_id", laptop.ID, "error", err)
	}

	return *laptop, nil
}

// ImportBatch bulk-inserts catalog rows and indexes each one. Rows that
// fail validation abort the whole import before anything is written.
func (s *LaptopService) ImportBatch(ctx context.Context, laptops []domain.Laptop) (int, error) {
	if len(laptops) == 0 {
		return 0, errors.New("nothing to import")
	}

	for i := range laptops {
		if err := s.validateLaptop(&laptops[i]); err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		if laptops[i].ID == uuid.Nil {
			laptops[i].ID = uuid.New()
		}
	}

	if err := s.laptopRepo.CreateBatch(ctx, laptops); err != nil {
		return 0, err
	}

	s.ranges.Invalidate()

	indexed := 0
	for i := range laptops {
		if err := s.indexer.IndexLaptop(ctx, laptops[i].ID.String(), describe(laptops[i])); err != nil {
			logger.Warn("failed to index laptop", "laptop_id", laptops[i].ID, "error", err)
			continue
		}
		indexed++
	}
	logger.Info("catalog import finished", "rows", len(laptops), "indexed", indexed)

	return len(laptops), nil
}

func (s *LaptopService) GetByID(ctx context.Context, id uuid.UUID) (domain.Laptop, error) {
	return s.laptopRepo.FindByID(ctx, id)
}

func (s *LaptopService) GetAll(ctx context.Context) ([]domain.Laptop, error) {
	return s.laptopRepo.FindAll(ctx)
}

func (s *LaptopService) Search(ctx context.Context, filter domain.LaptopFilter, limit int) ([]domain.Laptop, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	return s.laptopRepo.FindByFilter(ctx, filter, limit)
}

func (s *LaptopService) validateLaptop(laptop *domain.Laptop) error {
	if err := s.validate.Var(laptop.Brand, "required"); err != nil {
		return errors.New("brand is required")
	}
	if err := s.validate.Var(laptop.ProductName, "required"); err != nil {
		return errors.New("product name is required")
	}
	if err := s.validate.Var(laptop.PriceRM, "gt=0"); err != nil {
		return errors.New("price must be positive")
	}

	return nil
}

// describe renders one laptop as the text that gets embedded for
// similarity search.
func describe(l domain.Laptop) string {
	return fmt.Sprintf("%s %s, %s laptop, RM%.0f, %s %.1fGHz CPU, %dGB %s RAM, %s GPU, %.1f inch %s %dHz display, %dGB %s storage, %.2fkg, %.0fWh battery",
		l.Brand, l.ProductName, l.Color, l.PriceRM,
		l.ProcessorName, l.ProcessorGHz, l.RAMGB, l.RAMType,
		l.GPUModel, l.DisplaySizeInch, l.DisplayResolution, l.DisplayRefreshRateHz,
		l.SSDGB, l.SSDType, l.WeightKg, l.BatteryCapacityWh)
}
