package orders

import (
	"context"
	"testing"

	"myShopCart/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrdersRepo struct {
	carts  map[string][]domain.CartItem
	orders map[uint64]domain.Order
	calls  int
}

func (f *fakeOrdersRepo) Checkout(ctx context.Context, token, email string) (domain.Order, error) {
	f.calls++
	items, ok := f.carts[token]
	if !ok {
		return domain.Order{}, domain.ErrCartNotFound
	}
	if len(items) == 0 {
		return domain.Order{}, domain.ErrCartEmpty
	}

	order := domain.Order{ID: uint64(len(f.orders) + 1), Email: email}
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{OrderID: order.ID, ProductID: item.ProductID, Quantity: item.Quantity})
	}
	f.orders[order.ID] = order
	f.carts[token] = nil
	return order, nil
}

func (f *fakeOrdersRepo) FindByID(ctx context.Context, id uint64) (domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

const (
	fullCart    = "6a1f0c3e-2b4d-4e8f-9a1b-3c5d7e9f1a2b"
	emptyCart   = "0d9e8f7a-6b5c-4d3e-8f1a-2b3c4d5e6f70"
	missingCart = "f47ac10b-58cc-4372-a567-0e02b2c3d479"
)

func TestOrdersService_CreateOrder(t *testing.T) {
	repo := &fakeOrdersRepo{
		carts: map[string][]domain.CartItem{
			fullCart:  {{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}},
			emptyCart: {},
		},
		orders: map[uint64]domain.Order{},
	}
	svc := NewOrdersService(repo)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, fullCart, "  buyer@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", order.Email)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Empty(t, repo.carts[fullCart])

	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.CreateOrder(ctx, emptyCart, "buyer@example.com")
	assert.ErrorIs(t, err, domain.ErrCartEmpty)

	_, err = svc.CreateOrder(ctx, missingCart, "buyer@example.com")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestOrdersService_CreateOrderMalformedToken(t *testing.T) {
	repo := &fakeOrdersRepo{carts: map[string][]domain.CartItem{}, orders: map[uint64]domain.Order{}}
	svc := NewOrdersService(repo)

	for _, token := range []string{"abc", "", "c1", fullCart + "x"} {
		_, err := svc.CreateOrder(context.Background(), token, "buyer@example.com")
		assert.ErrorIs(t, err, domain.ErrCartNotFound, token)
	}
	assert.Zero(t, repo.calls)
}

func TestOrdersService_GetOrderMissing(t *testing.T) {
	svc := NewOrdersService(&fakeOrdersRepo{orders: map[uint64]domain.Order{}})

	_, err := svc.GetOrder(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = svc.GetOrder(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
