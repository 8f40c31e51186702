package services

import (
	"context"
	"testing"

	"marketplace/internal/apperr"
	"marketplace/internal/models"
	"marketplace/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	svc          *OrderService
	ownOrder     *models.Order
	foreignOrder *models.Order
}

// setupOrders seeds one product per vendor (1 and 2) and one pending
// order on each, mimicking the external order-intake flow.
func setupOrders(t *testing.T) orderFixture {
	t.Helper()
	ctx := context.Background()

	products := store.NewMemoryProductStore()
	orders := store.NewMemoryOrderStore(products)

	own, err := products.Create(ctx, &models.Product{Name: "Widget", Price: 9.99, Stock: 5, VendorID: 1})
	require.NoError(t, err)
	foreign, err := products.Create(ctx, &models.Product{Name: "Gizmo", Price: 3.5, Stock: 2, VendorID: 2})
	require.NoError(t, err)

	ownOrder, err := orders.Create(ctx, own.ID)
	require.NoError(t, err)
	foreignOrder, err := orders.Create(ctx, foreign.ID)
	require.NoError(t, err)

	return orderFixture{
		svc:          NewOrderService(orders, zerolog.Nop()),
		ownOrder:     ownOrder,
		foreignOrder: foreignOrder,
	}
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	f := setupOrders(t)

	listed, err := f.svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	order := listed[0]
	assert.Equal(t, f.ownOrder.ID, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.NotNil(t, order.Product)
	assert.Equal(t, "Widget", order.Product.Name)
	assert.Equal(t, 9.99, order.Product.Price)
}

func TestListOrdersEmpty(t *testing.T) {
	ctx := context.Background()
	f := setupOrders(t)

	listed, err := f.svc.List(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, listed)
	assert.Len(t, listed, 0)
}

func TestShipOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("missing order is forbidden", func(t *testing.T) {
		f := setupOrders(t)
		_, err := f.svc.Ship(ctx, 1, 9999)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("foreign order is forbidden", func(t *testing.T) {
		f := setupOrders(t)
		_, err := f.svc.Ship(ctx, 1, f.foreignOrder.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("owner ships and the transition is observable", func(t *testing.T) {
		f := setupOrders(t)

		shipped, err := f.svc.Ship(ctx, 1, f.ownOrder.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, shipped.Status)

		listed, err := f.svc.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, models.OrderStatusShipped, listed[0].Status)
	})

	t.Run("re-shipping re-persists without error", func(t *testing.T) {
		f := setupOrders(t)

		_, err := f.svc.Ship(ctx, 1, f.ownOrder.ID)
		require.NoError(t, err)

		again, err := f.svc.Ship(ctx, 1, f.ownOrder.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, again.Status)
	})
}
