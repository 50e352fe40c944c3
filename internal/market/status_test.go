package market_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
)

func TestUpdateStatus_OwningSellerMayChangeStatus(t *testing.T) {
	ctx := context.Background()
	store, seller, customer, product := seedStore(t, 5)
	engine := market.NewEngine(store)

	order, err := engine.PlaceOrder(ctx, product.ID, customer.ID, 1)
	require.NoError(t, err)

	updated, err := engine.UpdateStatus(ctx, order.ID, market.StatusShipped, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, market.StatusShipped, updated.Status)

	got, err := engine.OrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, market.StatusShipped, got.Status)
}

func TestUpdateStatus_WrongSellerIsRejectedAndStatusUnchanged(t *testing.T) {
	ctx := context.Background()
	store, _, customer, product := seedStore(t, 5)
	engine := market.NewEngine(store)

	order, err := engine.PlaceOrder(ctx, product.ID, customer.ID, 1)
	require.NoError(t, err)

	_, err = engine.UpdateStatus(ctx, order.ID, market.StatusShipped, "seller-lain")
	assert.ErrorIs(t, err, market.ErrUnauthorized)

	got, err := engine.OrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, market.StatusPending, got.Status)
}

// Transisi tidak dibatasi urutannya: delivered boleh balik ke pending.
func TestUpdateStatus_BackwardTransitionAllowed(t *testing.T) {
	ctx := context.Background()
	store, seller, customer, product := seedStore(t, 5)
	engine := market.NewEngine(store)

	order, err := engine.PlaceOrder(ctx, product.ID, customer.ID, 1)
	require.NoError(t, err)

	_, err = engine.UpdateStatus(ctx, order.ID, market.StatusDelivered, seller.ID)
	require.NoError(t, err)

	updated, err := engine.UpdateStatus(ctx, order.ID, market.StatusPending, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, market.StatusPending, updated.Status)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	ctx := context.Background()
	store, seller, customer, product := seedStore(t, 5)
	engine := market.NewEngine(store)

	order, err := engine.PlaceOrder(ctx, product.ID, customer.ID, 1)
	require.NoError(t, err)

	_, err = engine.UpdateStatus(ctx, order.ID, market.Status("teleported"), seller.ID)
	assert.ErrorIs(t, err, market.ErrInvalidStatus)
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	store, seller, _, _ := seedStore(t, 5)
	engine := market.NewEngine(store)

	_, err := engine.UpdateStatus(context.Background(), "no-such-order", market.StatusShipped, seller.ID)
	assert.ErrorIs(t, err, market.ErrOrderNotFound)
}

func TestStatusValid(t *testing.T) {
	for _, s := range []market.Status{
		market.StatusPending, market.StatusProcessing, market.StatusShipped,
		market.StatusDelivered, market.StatusCanceled,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, market.Status("unknown").Valid())
	assert.True(t, market.CanTransition(market.StatusDelivered, market.StatusPending))
	assert.False(t, market.CanTransition(market.StatusPending, market.Status("unknown")))
}
