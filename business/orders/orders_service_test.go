package orders

import (
	"context"
	"errors"
	"testing"

	"pickwise/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrdersRepo struct {
	orders    map[uint]domain.Orders
	cancelled []domain.Orders
	statuses  map[uint]string
	cancelErr error
}

func (f *fakeOrdersRepo) Create(_ context.Context, _ *domain.Orders) error { return nil }

func (f *fakeOrdersRepo) CreateBatch(_ context.Context, orders []domain.Orders) error {
	for i, o := range orders {
		o.ID = uint(i + 1)
		f.orders[o.ID] = o
	}
	return nil
}

func (f *fakeOrdersRepo) FindByID(_ context.Context, id uint) (domain.Orders, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Orders{}, errors.New("order not found")
	}
	return order, nil
}

func (f *fakeOrdersRepo) FindByUserID(_ context.Context, userID uint) ([]domain.Orders, error) {
	var out []domain.Orders
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	f.statuses[id] = status
	return nil
}

func (f *fakeOrdersRepo) CancelAndRestoreStock(_ context.Context, order domain.Orders) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, order)
	order.OrderStatus = StatusCancelled
	f.orders[order.ID] = order
	return nil
}

type fakeCartRepo struct {
	items    []domain.CartItem
	cleared  bool
	clearErr error
}

func (f *fakeCartRepo) FindByUserID(_ context.Context, _ uint) ([]domain.CartItem, error) {
	return f.items, nil
}

func (f *fakeCartRepo) ClearByUserID(_ context.Context, _ uint) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = true
	return nil
}

type fakeLaptopRepo struct {
	laptops map[uuid.UUID]domain.Laptop
}

func (f *fakeLaptopRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Laptop, error) {
	laptop, ok := f.laptops[id]
	if !ok {
		return domain.Laptop{}, errors.New("laptop not found")
	}
	return laptop, nil
}

type fakeAddressRepo struct {
	address domain.Address
}

func (f *fakeAddressRepo) FindByID(_ context.Context, _ uint) (domain.Address, error) {
	return f.address, nil
}

func newTestOrdersService() (*OrdersService, *fakeOrdersRepo, *fakeCartRepo, *fakeLaptopRepo) {
	orderRepo := &fakeOrdersRepo{orders: map[uint]domain.Orders{}, statuses: map[uint]string{}}
	cartRepo := &fakeCartRepo{}
	laptopRepo := &fakeLaptopRepo{laptops: map[uuid.UUID]domain.Laptop{}}
	addressRepo := &fakeAddressRepo{address: domain.Address{ID: 1, UserID: 7}}
	return NewOrdersService(orderRepo, cartRepo, laptopRepo, addressRepo), orderRepo, cartRepo, laptopRepo
}

func TestCheckout_PricesFromCatalogAndClearsCart(t *testing.T) {
	svc, orderRepo, cartRepo, laptopRepo := newTestOrdersService()

	laptopID := uuid.New()
	laptopRepo.laptops[laptopID] = domain.Laptop{ID: laptopID, PriceRM: 4200, Stock: 5}
	cartRepo.items = []domain.CartItem{{UserID: 7, LaptopID: laptopID, Quantity: 2}}

	orders, err := svc.Checkout(context.Background(), 7, 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, StatusPending, orders[0].OrderStatus)
	assert.Equal(t, 4200.0, orders[0].PriceEach)
	assert.Equal(t, 8400.0, orders[0].Subtotal)
	assert.True(t, cartRepo.cleared)
	assert.Len(t, orderRepo.orders, 1)
}

func TestCancelOrder_RestoresStockWithStatusFlip(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrdersService()

	laptopID := uuid.New()
	orderRepo.orders[3] = domain.Orders{
		ID:          3,
		UserID:      7,
		LaptopID:    laptopID,
		Quantity:    2,
		OrderStatus: StatusPending,
	}

	err := svc.CancelOrder(context.Background(), 7, 3)
	require.NoError(t, err)

	// The restore must carry the order's laptop and quantity so the
	// repository can put the reserved units back.
	require.Len(t, orderRepo.cancelled, 1)
	assert.Equal(t, laptopID, orderRepo.cancelled[0].LaptopID)
	assert.Equal(t, 2, orderRepo.cancelled[0].Quantity)
	assert.Equal(t, StatusCancelled, orderRepo.orders[3].OrderStatus)
}

func TestCancelOrder_OnlyPendingAndOwnOrders(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrdersService()

	orderRepo.orders[1] = domain.Orders{ID: 1, UserID: 7, OrderStatus: StatusShipped}
	orderRepo.orders[2] = domain.Orders{ID: 2, UserID: 9, OrderStatus: StatusPending}

	err := svc.CancelOrder(context.Background(), 7, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending")

	err = svc.CancelOrder(context.Background(), 7, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	assert.Empty(t, orderRepo.cancelled)
}

func TestCancelOrder_RepoFailurePropagates(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrdersService()

	orderRepo.orders[4] = domain.Orders{ID: 4, UserID: 7, OrderStatus: StatusPending}
	orderRepo.cancelErr = errors.New("deadlock detected")

	err := svc.CancelOrder(context.Background(), 7, 4)
	require.Error(t, err)
	assert.Equal(t, StatusPending, orderRepo.orders[4].OrderStatus)
}
