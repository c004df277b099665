package postgres

import (
	"context"
	"errors"
	"fmt"
	"pickwise/domain"

	"gorm.io/gorm"
)

type AddressRepository struct {
	DB *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{
		DB: db,
	}
}

func (r *AddressRepository) Create(ctx context.Context, address *domain.Address) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(address).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

func (r *AddressRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var addresses []domain.Address
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("is_default DESC, id").Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find addresses: %w", err)
	}

	return addresses, nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id uint) (domain.Address, error) {
	if err := ctx.Err(); err != nil {
		return domain.Address{}, fmt.Errorf("context error: %w", err)
	}

	var address domain.Address
	err := r.DB.WithContext(ctx).First(&address, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Address{}, errors.New("address not found")
		}
		return domain.Address{}, fmt.Errorf("failed to find address: %w", err)
	}

	return address, nil
}

func (r *AddressRepository) Update(ctx context.Context, address *domain.Address) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Save(address)
	if result.Error != nil {
		return fmt.Errorf("failed to update address: %w", result.Error)
	}

	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Address{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("address not found")
	}

	return nil
}

// ClearDefault removes the default flag from every address of a user.
func (r *AddressRepository) ClearDefault(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Model(&domain.Address{}).Where("user_id = ?", userID).Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear default address: %w", err)
	}

	return nil
}
