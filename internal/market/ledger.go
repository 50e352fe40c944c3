package market

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Ledger mengelola saldo wallet per customer. Saldo tidak pernah negatif:
// debit ditolak kalau saldo kurang, tidak pernah di-clamp ke nol.
type Ledger struct {
	Store Store
}

func NewLedger(store Store) *Ledger { return &Ledger{Store: store} }

// CreateWallet membuat wallet saldo 0. Satu customer maksimal satu wallet.
func (l *Ledger) CreateWallet(ctx context.Context, customerID string) (Wallet, error) {
	if _, err := l.Store.GetCustomer(ctx, customerID); err != nil {
		return Wallet{}, err
	}
	if _, err := l.Store.GetWalletByCustomer(ctx, customerID); err == nil {
		return Wallet{}, ErrWalletExists
	} else if !errors.Is(err, ErrWalletNotFound) {
		return Wallet{}, err
	}
	return l.Store.InsertWallet(ctx, Wallet{
		ID:         uuid.NewString(),
		CustomerID: customerID,
	})
}

func (l *Ledger) Credit(ctx context.Context, customerID string, amount int64) (Wallet, error) {
	return l.adjust(ctx, customerID, amount, +1)
}

func (l *Ledger) Debit(ctx context.Context, customerID string, amount int64) (Wallet, error) {
	return l.adjust(ctx, customerID, amount, -1)
}

func (l *Ledger) adjust(ctx context.Context, customerID string, amount int64, sign int64) (Wallet, error) {
	if amount <= 0 {
		return Wallet{}, ErrInvalidAmount
	}
	w, err := l.Store.GetWalletByCustomer(ctx, customerID)
	if err != nil {
		return Wallet{}, err
	}
	// Delta diterapkan atomik per baris oleh store; saldo yang barusan dibaca
	// hanya dipakai untuk pre-check, race ditangani di ApplyWalletDelta.
	if sign < 0 && w.BalanceCents < amount {
		return Wallet{}, &InsufficientFundsError{CustomerID: customerID, Requested: amount, Balance: w.BalanceCents}
	}
	return l.Store.ApplyWalletDelta(ctx, w.ID, sign*amount)
}

func (l *Ledger) Balance(ctx context.Context, customerID string) (Wallet, error) {
	return l.Store.GetWalletByCustomer(ctx, customerID)
}
