package orders

import (
	"context"
	"errors"
	"pickwise/domain"
	"pickwise/pkg/logger"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusShipped   = "SHIPPED"
	StatusDelivered = "DELIVERED"
	StatusCancelled = "CANCELLED"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusPaid:      true,
	StatusShipped:   true,
	StatusDelivered: true,
	StatusCancelled: true,
}

type OrdersRepository interface {
	Create(ctx context.Context, order *domain.Orders) error
	CreateBatch(ctx context.Context, orders []domain.Orders) error
	FindByID(ctx context.Context, id uint) (domain.Orders, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Orders, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	CancelAndRestoreStock(ctx context.Context, order domain.Orders) error
}

type CartRepository interface {
	FindByUserID(ctx context.Context, userID uint) ([]domain.CartItem, error)
	ClearByUserID(ctx context.Context, userID uint) error
}

type LaptopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Laptop, error)
}

type AddressRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Address, error)
}

type OrdersService struct {
	orderRepo   OrdersRepository
	cartRepo    CartRepository
	laptopRepo  LaptopRepository
	addressRepo AddressRepository
}

func NewOrdersService(
	orderRepo OrdersRepository,
	cartRepo CartRepository,
	laptopRepo LaptopRepository,
	addressRepo AddressRepository,
) *OrdersService {
	return &OrdersService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		laptopRepo:  laptopRepo,
		addressRepo: addressRepo,
	}
}

// Checkout turns the user's cart into pending orders at current catalog
// prices and empties the cart. Stock is reserved inside the order batch
// transaction; an out-of-stock laptop fails the whole checkout.
func (s *OrdersService) Checkout(ctx context.Context, userID uint, addressID uint) ([]domain.Orders, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, errors.New("address not found")
	}

	items, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("cart is empty")
	}

	orders := make([]domain.Orders, 0, len(items))
	for _, item := range items {
		laptop, err := s.laptopRepo.FindByID(ctx, item.LaptopID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, domain.Orders{
			UserID:      userID,
			LaptopID:    laptop.ID,
			AddressID:   addressID,
			Quantity:    item.Quantity,
			PriceEach:   laptop.PriceRM,
			Subtotal:    laptop.PriceRM * float64(item.Quantity),
			OrderStatus: StatusPending,
		})
	}

	if err := s.orderRepo.CreateBatch(ctx, orders); err != nil {
		return nil, err
	}

	if err := s.cartRepo.ClearByUserID(ctx, userID); err != nil {
		// The orders exist; a stale cart is recoverable, failing the
		// checkout here would double-charge on retry.
		logger.Warn("failed to clear cart after checkout", "user_id", userID, "error", err)
	}

	return orders, nil
}

func (s *OrdersService) GetOrdersByUser(ctx context.Context, userID uint) ([]domain.Orders, error) {
	return s.orderRepo.FindByUserID(ctx, userID)
}

func (s *OrdersService) GetOrder(ctx context.Context, userID uint, orderID uint) (domain.Orders, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Orders{}, err
	}
	if order.UserID != userID {
		return domain.Orders{}, errors.New("order not found")
	}

	return order, nil
}

// UpdateStatus is an admin operation; status transitions are not enforced
// beyond membership in the known set.
func (s *OrdersService) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	if !validStatuses[status] {
		return errors.New("invalid order status")
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}

// CancelOrder lets a customer cancel their own order while still pending.
// The quantity reserved at checkout goes back to the catalog in the same
// transaction that flips the status.
func (s *OrdersService) CancelOrder(ctx context.Context, userID uint, orderID uint) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return errors.New("order not found")
	}
	if order.OrderStatus != StatusPending {
		return errors.New("only pending orders can be cancelled")
	}

	return s.orderRepo.CancelAndRestoreStock(ctx, order)
}
