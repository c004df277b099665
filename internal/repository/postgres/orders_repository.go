package postgres

import (
	"context"
	"errors"
	"fmt"
	"pickwise/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) Create(ctx context.Context, order *domain.Orders) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// CreateBatch inserts a set of orders and decrements laptop stock in one
// transaction. The whole checkout rolls back if any laptop runs out of stock.
func (r *OrdersRepository) CreateBatch(ctx context.Context, orders []domain.Orders) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range orders {
			result := tx.Model(&domain.Laptop{}).
				Where("id = ? AND stock >= ?", orders[i].LaptopID, orders[i].Quantity).
				Update("stock", gorm.Expr("stock - ?", orders[i].Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return errors.New("insufficient stock")
			}
		}
		if err := tx.Create(&orders).Error; err != nil {
			return fmt.Errorf("failed to create orders: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// CancelAndRestoreStock flips a pending order to CANCELLED and returns its
// quantity to laptop stock in one transaction. The status guard makes the
// cancel fail when the order moved on concurrently.
func (r *OrdersRepository) CancelAndRestoreStock(ctx context.Context, order domain.Orders) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Orders{}).
			Where("id = ? AND order_status = ?", order.ID, "PENDING").
			Update("order_status", "CANCELLED")
		if result.Error != nil {
			return fmt.Errorf("failed to cancel order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("only pending orders can be cancelled")
		}

		result = tx.Model(&domain.Laptop{}).
			Where("id = ?", order.LaptopID).
			Update("stock", gorm.Expr("stock + ?", order.Quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to restore stock: %w", result.Error)
		}

		return nil
	})
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint) (domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return domain.Orders{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Orders
	err := r.DB.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Orders{}, errors.New("order not found")
		}
		return domain.Orders{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

func (r *OrdersRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Orders
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Orders{}).Where("id = ?", id).Update("order_status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("order not found")
	}

	return nil
}
