package cart

import (
	"context"
	"errors"
	"pickwise/domain"

	"github.com/google/uuid"
)

type CartRepository interface {
	Add(ctx context.Context, item *domain.CartItem) error
	FindByUserID(ctx context.Context, userID uint) ([]domain.CartItem, error)
	FindByID(ctx context.Context, id uint) (domain.CartItem, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int) error
	Delete(ctx context.Context, id uint) error
	ClearByUserID(ctx context.Context, userID uint) error
}

type LaptopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Laptop, error)
}

type CartService struct {
	cartRepo   CartRepository
	laptopRepo LaptopRepository
}

func NewCartService(cartRepo CartRepository, laptopRepo LaptopRepository) *CartService {
	return &CartService{
		cartRepo:   cartRepo,
		laptopRepo: laptopRepo,
	}
}

func (s *CartService) AddItem(ctx context.Context, userID uint, laptopID uuid.UUID, quantity int) (domain.CartItem, error) {
	if quantity <= 0 {
		return domain.CartItem{}, errors.New("quantity must be positive")
	}

	laptop, err := s.laptopRepo.FindByID(ctx, laptopID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if laptop.Stock < quantity {
		return domain.CartItem{}, errors.New("insufficient stock")
	}

	// Same laptop twice bumps quantity rather than adding a second row.
	items, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.CartItem{}, err
	}
	for _, existing := range items {
		if existing.LaptopID == laptopID {
			newQty := existing.Quantity + quantity
			if laptop.Stock < newQty {
				return domain.CartItem{}, errors.New("insufficient stock")
			}
			if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, newQty); err != nil {
				return domain.CartItem{}, err
			}
			existing.Quantity = newQty
			return existing, nil
		}
	}

	item := domain.CartItem{
		UserID:   userID,
		LaptopID: laptopID,
		Quantity: quantity,
	}
	if err := s.cartRepo.Add(ctx, &item); err != nil {
		return domain.CartItem{}, err
	}

	return item, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	return s.cartRepo.FindByUserID(ctx, userID)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID uint, itemID uint, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return errors.New("cart item not found")
	}

	laptop, err := s.laptopRepo.FindByID(ctx, item.LaptopID)
	if err != nil {
		return err
	}
	if laptop.Stock < quantity {
		return errors.New("insufficient stock")
	}

	return s.cartRepo.UpdateQuantity(ctx, itemID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID uint, itemID uint) error {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return errors.New("cart item not found")
	}

	return s.cartRepo.Delete(ctx, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.cartRepo.ClearByUserID(ctx, userID)
}
