package postgres

import (
	"context"
	"errors"
	"fmt"
	"pickwise/domain"

	"gorm.io/gorm"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		DB: db,
	}
}

func (r *CartRepository) Add(ctx context.Context, item *domain.CartItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.CartItem
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cart items: %w", err)
	}

	return items, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id uint) (domain.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.CartItem{}, fmt.Errorf("context error: %w", err)
	}

	var item domain.CartItem
	err := r.DB.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CartItem{}, errors.New("cart item not found")
		}
		return domain.CartItem{}, fmt.Errorf("failed to find cart item: %w", err)
	}

	return item, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("cart item not found")
	}

	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.CartItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("cart item not found")
	}

	return nil
}

func (r *CartRepository) ClearByUserID(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
