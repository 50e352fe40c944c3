package market_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
)

func TestLedger_CreateWallet(t *testing.T) {
	ctx := context.Background()
	store, _, customer, _ := seedStore(t, 1)
	ledger := market.NewLedger(store)

	w, err := ledger.CreateWallet(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, w.CustomerID)
	assert.EqualValues(t, 0, w.BalanceCents)

	// satu customer satu wallet
	_, err = ledger.CreateWallet(ctx, customer.ID)
	assert.ErrorIs(t, err, market.ErrWalletExists)

	_, err = ledger.CreateWallet(ctx, "no-such-customer")
	assert.ErrorIs(t, err, market.ErrCustomerNotFound)
}

func TestLedger_CreditDebitRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _, customer, _ := seedStore(t, 1)
	ledger := market.NewLedger(store)

	_, err := ledger.CreateWallet(ctx, customer.ID)
	require.NoError(t, err)

	w, err := ledger.Credit(ctx, customer.ID, 500)
	require.NoError(t, err)
	assert.EqualValues(t, 500, w.BalanceCents)

	w, err = ledger.Debit(ctx, customer.ID, 500)
	require.NoError(t, err)
	assert.EqualValues(t, 0, w.BalanceCents, "credit lalu debit jumlah sama harus balik ke saldo awal")
}

func TestLedger_DebitNeverBelowZero(t *testing.T) {
	ctx := context.Background()
	store, _, customer, _ := seedStore(t, 1)
	ledger := market.NewLedger(store)

	_, err := ledger.CreateWallet(ctx, customer.ID)
	require.NoError(t, err)

	_, err = ledger.Credit(ctx, customer.ID, 100)
	require.NoError(t, err)

	_, err = ledger.Debit(ctx, customer.ID, 150)
	var fundsErr *market.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.EqualValues(t, 100, fundsErr.Balance)
	assert.EqualValues(t, 150, fundsErr.Requested)

	w, err := ledger.Balance(ctx, customer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 100, w.BalanceCents, "debit gagal tidak boleh mengubah saldo")

	w, err = ledger.Debit(ctx, customer.ID, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 0, w.BalanceCents)
}

func TestLedger_InvalidAmounts(t *testing.T) {
	ctx := context.Background()
	store, _, customer, _ := seedStore(t, 1)
	ledger := market.NewLedger(store)

	_, err := ledger.CreateWallet(ctx, customer.ID)
	require.NoError(t, err)

	_, err = ledger.Credit(ctx, customer.ID, 0)
	assert.ErrorIs(t, err, market.ErrInvalidAmount)
	_, err = ledger.Credit(ctx, customer.ID, -5)
	assert.ErrorIs(t, err, market.ErrInvalidAmount)
	_, err = ledger.Debit(ctx, customer.ID, 0)
	assert.ErrorIs(t, err, market.ErrInvalidAmount)
}

func TestLedger_BalanceNotFound(t *testing.T) {
	ctx := context.Background()
	store, _, customer, _ := seedStore(t, 1)
	ledger := market.NewLedger(store)

	_, err := ledger.Balance(ctx, customer.ID)
	assert.ErrorIs(t, err, market.ErrWalletNotFound)

	_, err = ledger.Credit(ctx, customer.ID, 100)
	assert.ErrorIs(t, err, market.ErrWalletNotFound)
}
