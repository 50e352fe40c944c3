package market

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Engine menangani penempatan order dan perubahan status.
type Engine struct {
	Store Store
}

func NewEngine(store Store) *Engine { return &Engine{Store: store} }

// PlaceOrder: cek stok -> kurangi stok -> insert order, semua dalam satu
// transaksi supaya dua request paralel tidak bisa oversell produk yang sama.
func (e *Engine) PlaceOrder(ctx context.Context, productID, customerID string, qty int) (Order, error) {
	if qty <= 0 {
		return Order{}, ErrInvalidQuantity
	}
	if _, err := e.Store.GetCustomer(ctx, customerID); err != nil {
		return Order{}, err
	}

	var order Order
	err := e.Store.WithTx(ctx, func(tx Store) error {
		p, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p.Quantity < qty {
			return &InsufficientStockError{ProductID: productID, Requested: qty, Available: p.Quantity}
		}
		if err := tx.UpdateProductStock(ctx, productID, p.Quantity-qty); err != nil {
			return err
		}

		order = Order{
			ID:         uuid.NewString(),
			ProductID:  productID,
			SellerID:   p.SellerID, // order dimiliki seller dari product
			CustomerID: customerID,
			Quantity:   qty,
			Status:     StatusPending,
			CreatedAt:  time.Now().UTC(),
		}
		order, err = tx.InsertOrder(ctx, order)
		return err
	})
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

// UpdateStatus: hanya seller pemilik order yang boleh mengubah status.
// Nilai status divalidasi terhadap enumerasi; urutan transisi tidak dibatasi.
func (e *Engine) UpdateStatus(ctx context.Context, orderID string, newStatus Status, actingSellerID string) (Order, error) {
	if !newStatus.Valid() {
		return Order{}, ErrInvalidStatus
	}
	order, err := e.Store.GetOrder(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if order.SellerID != actingSellerID {
		return Order{}, ErrUnauthorized
	}
	if err := e.Store.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
		return Order{}, err
	}
	order.Status = newStatus
	return order, nil
}

func (e *Engine) OrderByID(ctx context.Context, orderID string) (Order, error) {
	return e.Store.GetOrder(ctx, orderID)
}

// OrdersByCustomer mengembalikan slice kosong (bukan error) kalau tidak ada
// order; boundary HTTP yang memutuskan arti "kosong".
func (e *Engine) OrdersByCustomer(ctx context.Context, customerID string, offset, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return e.Store.ListOrdersByCustomer(ctx, customerID, offset, limit)
}

func (e *Engine) OrdersBySeller(ctx context.Context, sellerID string) ([]Order, error) {
	return e.Store.ListOrdersBySeller(ctx, sellerID)
}
