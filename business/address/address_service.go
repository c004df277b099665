package address

import (
	"context"
	"errors"
	"pickwise/domain"

	"github.com/go-playground/validator/v10"
)

type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) error
	FindByUserID(ctx context.Context, userID uint) ([]domain.Address, error)
	FindByID(ctx context.Context, id uint) (domain.Address, error)
	Update(ctx context.Context, address *domain.Address) error
	Delete(ctx context.Context, id uint) error
	ClearDefault(ctx context.Context, userID uint) error
}

type AddressService struct {
	addressRepo AddressRepository
	validate    *validator.Validate
}

func NewAddressService(addressRepo AddressRepository, validate *validator.Validate) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		validate:    validate,
	}
}

func (s *AddressService) Create(ctx context.Context, userID uint, address *domain.Address) (domain.Address, error) {
	if err := s.validate.Var(address.Recipient, "required"); err != nil {
		return domain.Address{}, errors.New("recipient is required")
	}
	if err := s.validate.Var(address.Line1, "required"); err != nil {
		return domain.Address{}, errors.New("address line is required")
	}

	address.UserID = userID

	if address.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return domain.Address{}, err
		}
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return domain.Address{}, err
	}

	return *address, nil
}

func (s *AddressService) ListByUser(ctx context.Context, userID uint) ([]domain.Address, error) {
	return s.addressRepo.FindByUserID(ctx, userID)
}

func (s *AddressService) Update(ctx context.Context, userID uint, id uint, updated *domain.Address) (domain.Address, error) {
	existing, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Address{}, err
	}
	if existing.UserID != userID {
		return domain.Address{}, errors.New("address not found")
	}

	if updated.Label != "" {
		existing.Label = updated.Label
	}
	if updated.Recipient != "" {
		existing.Recipient = updated.Recipient
	}
	if updated.Phone != "" {
		existing.Phone = updated.Phone
	}
	if updated.Line1 != "" {
		existing.Line1 = updated.Line1
	}
	if updated.Line2 != "" {
		existing.Line2 = updated.Line2
	}
	if updated.City != "" {
		existing.City = updated.City
	}
	if updated.State != "" {
		existing.State = updated.State
	}
	if updated.Postcode != "" {
		existing.Postcode = updated.Postcode
	}

	if updated.IsDefault && !existing.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return domain.Address{}, err
		}
		existing.IsDefault = true
	}

	if err := s.addressRepo.Update(ctx, &existing); err != nil {
		return domain.Address{}, err
	}

	return existing, nil
}

func (s *AddressService) Delete(ctx context.Context, userID uint, id uint) error {
	existing, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return errors.New("address not found")
	}

	return s.addressRepo.Delete(ctx, id)
}
