package postgres

import (
	"context"
	"errors"
	"fmt"
	"pickwise/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// statColumns whitelists the attributes the range cache may aggregate.
var statColumns = map[string]string{
	"price_rm":            "price_rm",
	"cpu_benchmark":       "cpu_benchmark",
	"gpu_benchmark":       "gpu_benchmark",
	"weight_kg":           "weight_kg",
	"battery_capacity_wh": "battery_capacity_wh",
}

type LaptopRepository struct {
	DB *gorm.DB
}

func NewLaptopRepository(db *gorm.DB) *LaptopRepository {
	return &LaptopRepository{
		DB: db,
	}
}

func (r *LaptopRepository) Create(ctx context.Context, laptop *domain.Laptop) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(laptop).Error; err != nil {
		return fmt.Errorf("failed to create laptop: %w", err)
	}

	return nil
}

func (r *LaptopRepository) CreateBatch(ctx context.Context, laptops []domain.Laptop) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(laptops) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(laptops, 200).Error; err != nil {
		return fmt.Errorf("failed to import laptops: %w", err)
	}

	return nil
}

func (r *LaptopRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Laptop, error) {
	if err := ctx.Err(); err != nil {
		return domain.Laptop{}, fmt.Errorf("context error: %w", err)
	}

	var laptop domain.Laptop

	err := r.DB.WithContext(ctx).First(&laptop, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Laptop{}, errors.New("laptop not found")
		}
		return domain.Laptop{}, fmt.Errorf("failed to find laptop: %w", err)
	}

	return laptop, nil
}

func (r *LaptopRepository) FindAll(ctx context.Context) ([]domain.Laptop, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var laptops []domain.Laptop
	err := r.DB.WithContext(ctx).Find(&laptops).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find laptops: %w", err)
	}

	return laptops, nil
}

func (r *LaptopRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Laptop, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Laptop{}, nil
	}

	var laptops []domain.Laptop
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&laptops).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find laptops by ids: %w", err)
	}

	return laptops, nil
}

func (r *LaptopRepository) FindByFilter(ctx context.Context, filter domain.LaptopFilter, limit int) ([]domain.Laptop, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Model(&domain.Laptop{})

	if len(filter.Brands) > 0 {
		q = q.Where("brand IN ?", filter.Brands)
	}
	if filter.PriceMin != nil {
		q = q.Where("price_rm >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		q = q.Where("price_rm <= ?", *filter.PriceMax)
	}
	if filter.CPUBenchmarkMin != nil {
		q = q.Where("cpu_benchmark >= ?", *filter.CPUBenchmarkMin)
	}
	if filter.GPUBenchmarkMin != nil {
		q = q.Where("gpu_benchmark >= ?", *filter.GPUBenchmarkMin)
	}
	if filter.RAMGBMin != nil {
		q = q.Where("ram_gb >= ?", *filter.RAMGBMin)
	}
	if filter.WeightKgMax != nil {
		q = q.Where("weight_kg <= ?", *filter.WeightKgMax)
	}

	if limit > 0 {
		q = q.Limit(limit)
	}

	var laptops []domain.Laptop
	if err := q.Find(&laptops).Error; err != nil {
		return nil, fmt.Errorf("failed to filter laptops: %w", err)
	}

	return laptops, nil
}

// AggregateMinMax computes min/max of one numeric attribute across the
// whole catalog. ok=false means no rows carry a value.
func (r *LaptopRepository) AggregateMinMax(ctx context.Context, attribute string) (domain.StatRange, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.StatRange{}, false, fmt.Errorf("context error: %w", err)
	}

	col, ok := statColumns[attribute]
	if !ok {
		return domain.StatRange{}, false, fmt.Errorf("unknown stat attribute: %q", attribute)
	}

	var row struct {
		Min *float64
		Max *float64
	}

	err := r.DB.WithContext(ctx).
		Model(&domain.Laptop{}).
		Select("MIN(" + col + ") AS min, MAX(" + col + ") AS max").
		Scan(&row).Error
	if err != nil {
		return domain.StatRange{}, false, fmt.Errorf("failed to aggregate %s: %w", attribute, err)
	}

	if row.Min == nil || row.Max == nil {
		return domain.StatRange{}, false, nil
	}

	return domain.StatRange{Min: *row.Min, Max: *row.Max}, true, nil
}
