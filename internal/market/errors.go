package market

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound  = errors.New("market: product not found")
	ErrOrderNotFound    = errors.New("market: order not found")
	ErrCustomerNotFound = errors.New("market: customer not found")
	ErrSellerNotFound   = errors.New("market: seller not found")
	ErrWalletNotFound   = errors.New("market: wallet not found")

	ErrInvalidQuantity = errors.New("market: quantity must be greater than zero")
	ErrInvalidAmount   = errors.New("market: amount must be greater than zero")
	ErrInvalidStatus   = errors.New("market: unknown order status")

	ErrWalletExists = errors.New("market: wallet already exists for customer")
	ErrEmailExists  = errors.New("market: email already registered")
	ErrUnauthorized = errors.New("market: seller not authorized for this order")
)

// InsufficientStockError membawa jumlah stok tersedia untuk pesan ke user.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("market: not enough stock for product %s: requested %d, only %d available",
		e.ProductID, e.Requested, e.Available)
}

type InsufficientFundsError struct {
	CustomerID string
	Requested  int64
	Balance    int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("market: insufficient balance for customer %s: requested %d, balance %d",
		e.CustomerID, e.Requested, e.Balance)
}
