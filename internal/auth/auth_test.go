package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	"github.com/ariefcatur/go-marketplace.git/internal/memstore"
)

func newService() (*auth.Service, *memstore.Store) {
	store := memstore.New()
	svc := auth.New(auth.Config{
		Secret:   []byte("test-secret"),
		Issuer:   "market-api-test",
		TokenTTL: 15 * time.Minute,
	}, store)
	return svc, store
}

func TestRegisterLoginAuthenticate_Seller(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	sl, err := svc.RegisterSeller(ctx, auth.RegisterSellerInput{
		Name: "Andi", Email: "andi@toko.test", Password: "rahasia123", StoreName: "Toko Andi",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sl.ID)
	assert.NotEqual(t, "rahasia123", sl.PasswordHash, "password harus di-hash")

	tok, err := svc.LoginSeller(ctx, "andi@toko.test", "rahasia123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	p, err := svc.Authenticate(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, auth.KindSeller, p.Kind)
	assert.Equal(t, sl.ID, p.ID)
	assert.Equal(t, "andi@toko.test", p.Email)
}

func TestRegisterLoginAuthenticate_Customer(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	c, err := svc.RegisterCustomer(ctx, auth.RegisterCustomerInput{
		Name: "Budi", Email: "budi@mail.test", Password: "sandi456",
	})
	require.NoError(t, err)

	tok, err := svc.LoginCustomer(ctx, "budi@mail.test", "sandi456")
	require.NoError(t, err)

	p, err := svc.Authenticate(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, auth.KindCustomer, p.Kind)
	assert.Equal(t, c.ID, p.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.RegisterCustomer(ctx, auth.RegisterCustomerInput{
		Email: "budi@mail.test", Password: "sandi456",
	})
	require.NoError(t, err)

	_, err = svc.LoginCustomer(ctx, "budi@mail.test", "salah")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = svc.LoginCustomer(ctx, "tidak-terdaftar@mail.test", "sandi456")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.RegisterSeller(ctx, auth.RegisterSellerInput{
		Email: "andi@toko.test", Password: "x", StoreName: "Toko"})
	require.NoError(t, err)

	_, err = svc.RegisterSeller(ctx, auth.RegisterSellerInput{
		Email: "andi@toko.test", Password: "y", StoreName: "Toko Lain"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestAuthenticate_BadTokens(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Authenticate(ctx, "bukan-jwt")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	// token dari secret lain ditolak
	other := auth.New(auth.Config{Secret: []byte("secret-lain"), TokenTTL: time.Minute},
		memstore.New())
	_, err = other.RegisterCustomer(ctx, auth.RegisterCustomerInput{Email: "x@y.test", Password: "p"})
	require.NoError(t, err)
	tok, err := other.LoginCustomer(ctx, "x@y.test", "p")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestAuthenticate_DeletedAccountTokenRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	// token valid tapi akunnya tidak ada di store ini
	twin, _ := newService()
	_, err := twin.RegisterCustomer(ctx, auth.RegisterCustomerInput{Email: "ghost@mail.test", Password: "p"})
	require.NoError(t, err)
	tok, err := twin.LoginCustomer(ctx, "ghost@mail.test", "p")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}
