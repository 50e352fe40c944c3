package market_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
	"github.com/ariefcatur/go-marketplace.git/internal/memstore"
)

func seedStore(t *testing.T, stock int) (*memstore.Store, market.Seller, market.Customer, market.Product) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	seller, err := store.InsertSeller(ctx, market.Seller{
		ID: uuid.NewString(), Name: "Toko Andi", Email: "andi@toko.test", StoreName: "Toko Andi",
	})
	require.NoError(t, err)

	customer, err := store.InsertCustomer(ctx, market.Customer{
		ID: uuid.NewString(), Name: "Budi", Email: "budi@mail.test",
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	product, err := store.InsertProduct(ctx, market.Product{
		ID: uuid.NewString(), Name: "Keyboard", PriceCents: 250_00, Quantity: stock,
		SellerID: seller.ID, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	return store, seller, customer, product
}

func TestPlaceOrder_DecrementsStockAndCreatesPendingOrder(t *testing.T) {
	ctx := context.Background()
	store, seller, customer, product := seedStore(t, 10)
	engine := market.NewEngine(store)

	order, err := engine.PlaceOrder(ctx, product.ID, customer.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, market.StatusPending, order.Status)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, seller.ID, order.SellerID)
	assert.Equal(t, customer.ID, order.CustomerID)
	assert.NotEmpty(t, order.ID)

	p, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Quantity)

	got, err := engine.OrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestPlaceOrder_InsufficientStockLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store, _, customer, product := seedStore(t, 2)
	engine := market.NewEngine(store)

	_, err := engine.PlaceOrder(ctx, product.ID, customer.ID, 5)
	var stockErr *market.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	p, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Quantity, "stok tidak boleh berubah kalau placement gagal")

	orders, err := engine.OrdersByCustomer(ctx, customer.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrder_Validation(t *testing.T) {
	ctx := context.Background()
	store, _, customer, product := seedStore(t, 5)
	engine := market.NewEngine(store)

	_, err := engine.PlaceOrder(ctx, product.ID, customer.ID, 0)
	assert.ErrorIs(t, err, market.ErrInvalidQuantity)

	_, err = engine.PlaceOrder(ctx, product.ID, customer.ID, -1)
	assert.ErrorIs(t, err, market.ErrInvalidQuantity)

	_, err = engine.PlaceOrder(ctx, "no-such-product", customer.ID, 1)
	assert.ErrorIs(t, err, market.ErrProductNotFound)

	_, err = engine.PlaceOrder(ctx, product.ID, "no-such-customer", 1)
	assert.ErrorIs(t, err, market.ErrCustomerNotFound)
}

// Skenario: stok 5, order 5 habiskan stok, order berikutnya ditolak dengan
// available=0.
func TestPlaceOrder_SellOutThenReject(t *testing.T) {
	ctx := context.Background()
	store, _, customer, product := seedStore(t, 5)
	engine := market.NewEngine(store)

	order, err := engine.PlaceOrder(ctx, product.ID, customer.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, market.StatusPending, order.Status)
	assert.Equal(t, 5, order.Quantity)

	p, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)

	_, err = engine.PlaceOrder(ctx, product.ID, customer.ID, 1)
	var stockErr *market.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 0, stockErr.Available)
}

// Properti: placement paralel tidak pernah oversell, stok tidak pernah
// negatif.
func TestPlaceOrder_ConcurrentPlacementsNeverOversell(t *testing.T) {
	ctx := context.Background()
	const stock = 10
	const attempts = 25

	store, _, customer, product := seedStore(t, stock)
	engine := market.NewEngine(store)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.PlaceOrder(ctx, product.ID, customer.ID, 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			var stockErr *market.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
		}
	}
	assert.Equal(t, stock, succeeded)

	p, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.GreaterOrEqual(t, p.Quantity, 0)

	orders, err := engine.OrdersByCustomer(ctx, customer.ID, 0, attempts)
	require.NoError(t, err)
	assert.Len(t, orders, stock)
}

func TestOrdersByCustomer_Pagination(t *testing.T) {
	ctx := context.Background()
	store, _, customer, product := seedStore(t, 100)
	engine := market.NewEngine(store)

	for i := 0; i < 5; i++ {
		_, err := engine.PlaceOrder(ctx, product.ID, customer.ID, 1)
		require.NoError(t, err)
	}

	page, err := engine.OrdersByCustomer(ctx, customer.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	empty, err := engine.OrdersByCustomer(ctx, "other-customer", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, empty, "tanpa order balas slice kosong, bukan error")
}
