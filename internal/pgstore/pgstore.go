// Package pgstore mengimplementasikan market.Store di atas Postgres (pgx).
package pgstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
)

// querier dipenuhi oleh *pgxpool.Pool maupun pgx.Tx, jadi query yang sama
// bisa jalan di dalam atau di luar transaksi.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool // nil saat store ini adalah view transaksi
	q    querier
}

func New(pool *pgxpool.Pool) *Store { return &Store{pool: pool, q: pool} }

func (s *Store) WithTx(ctx context.Context, fn func(tx market.Store) error) error {
	if s.pool == nil {
		return fn(s) // sudah di dalam tx, pakai unit yang sama
	}
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&Store{q: tx}); err != nil {
		return err // rollback via defer, tidak ada state parsial
	}
	return tx.Commit(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ---- products ----

const productCols = `id, name, description, price_cents, quantity, seller_id, created_at, updated_at`

func scanProduct(row pgx.Row) (market.Product, error) {
	var p market.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Quantity, &p.SellerID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return market.Product{}, market.ErrProductNotFound
	}
	return p, err
}

func (s *Store) GetProduct(ctx context.Context, id string) (market.Product, error) {
	return scanProduct(s.q.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
}

// GetProductForUpdate mengunci baris product selama transaksi berjalan supaya
// cek stok dan pengurangannya tidak bisa diselingi placement lain.
func (s *Store) GetProductForUpdate(ctx context.Context, id string) (market.Product, error) {
	return scanProduct(s.q.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1 FOR UPDATE`, id))
}

func (s *Store) InsertProduct(ctx context.Context, p market.Product) (market.Product, error) {
	_, err := s.q.Exec(ctx, `
		INSERT INTO products(id, name, description, price_cents, quantity, seller_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Quantity, p.SellerID, p.CreatedAt, p.UpdatedAt)
	return p, err
}

func (s *Store) UpdateProduct(ctx context.Context, p market.Product) (market.Product, error) {
	ct, err := s.q.Exec(ctx, `
		UPDATE products SET name=$2, description=$3, price_cents=$4, quantity=$5, updated_at=$6
		WHERE id=$1`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Quantity, p.UpdatedAt)
	if err != nil {
		return market.Product{}, err
	}
	if ct.RowsAffected() != 1 {
		return market.Product{}, market.ErrProductNotFound
	}
	return p, nil
}

func (s *Store) UpdateProductStock(ctx context.Context, id string, quantity int) error {
	ct, err := s.q.Exec(ctx, `UPDATE products SET quantity=$2, updated_at=now() WHERE id=$1`, id, quantity)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return market.ErrProductNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	ct, err := s.q.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return market.ErrProductNotFound
	}
	return nil
}

func (s *Store) ListProducts(ctx context.Context) ([]market.Product, error) {
	rows, err := s.q.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []market.Product
	for rows.Next() {
		var p market.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Quantity, &p.SellerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ---- orders ----

const orderCols = `id, product_id, seller_id, customer_id, quantity, status, created_at`

func (s *Store) InsertOrder(ctx context.Context, o market.Order) (market.Order, error) {
	_, err := s.q.Exec(ctx, `
		INSERT INTO orders(id, product_id, seller_id, customer_id, quantity, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		o.ID, o.ProductID, o.SellerID, o.CustomerID, o.Quantity, string(o.Status), o.CreatedAt)
	return o, err
}

func (s *Store) GetOrder(ctx context.Context, id string) (market.Order, error) {
	var o market.Order
	var status string
	err := s.q.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.ProductID, &o.SellerID, &o.CustomerID, &o.Quantity, &status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return market.Order{}, market.ErrOrderNotFound
	}
	if err != nil {
		return market.Order{}, err
	}
	o.Status = market.Status(status)
	return o, nil
}

func (s *Store) ListOrdersByCustomer(ctx context.Context, customerID string, offset, limit int) ([]market.Order, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+orderCols+` FROM orders
		WHERE customer_id=$1 ORDER BY created_at OFFSET $2 LIMIT $3`,
		customerID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *Store) ListOrdersBySeller(ctx context.Context, sellerID string) ([]market.Order, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+orderCols+` FROM orders WHERE seller_id=$1 ORDER BY created_at`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]market.Order, error) {
	out := []market.Order{}
	for rows.Next() {
		var o market.Order
		var status string
		if err := rows.Scan(&o.ID, &o.ProductID, &o.SellerID, &o.CustomerID, &o.Quantity, &status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = market.Status(status)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status market.Status) error {
	ct, err := s.q.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, string(status))
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return market.ErrOrderNotFound
	}
	return nil
}

// ---- wallets ----

func (s *Store) GetWalletByCustomer(ctx context.Context, customerID string) (market.Wallet, error) {
	var w market.Wallet
	err := s.q.QueryRow(ctx, `SELECT id, customer_id, balance_cents FROM wallets WHERE customer_id=$1`, customerID).
		Scan(&w.ID, &w.CustomerID, &w.BalanceCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return market.Wallet{}, market.ErrWalletNotFound
	}
	return w, err
}

func (s *Store) InsertWallet(ctx context.Context, w market.Wallet) (market.Wallet, error) {
	_, err := s.q.Exec(ctx, `INSERT INTO wallets(id, customer_id, balance_cents) VALUES ($1,$2,$3)`,
		w.ID, w.CustomerID, w.BalanceCents)
	if isUniqueViolation(err) {
		// unique(customer_id) menjaga invariant satu wallet per customer
		return market.Wallet{}, market.ErrWalletExists
	}
	return w, err
}

// ApplyWalletDelta: read-modify-write satu baris dalam satu statement.
// Kondisi balance_cents + delta >= 0 menolak debit yang bikin saldo negatif
// walau ada credit/debit paralel di antara pre-check dan update.
func (s *Store) ApplyWalletDelta(ctx context.Context, walletID string, delta int64) (market.Wallet, error) {
	var w market.Wallet
	err := s.q.QueryRow(ctx, `
		UPDATE wallets SET balance_cents = balance_cents + $2
		WHERE id=$1 AND balance_cents + $2 >= 0
		RETURNING id, customer_id, balance_cents`,
		walletID, delta).Scan(&w.ID, &w.CustomerID, &w.BalanceCents)
	if errors.Is(err, pgx.ErrNoRows) {
		// bedakan wallet hilang vs saldo kurang
		var cur market.Wallet
		err2 := s.q.QueryRow(ctx, `SELECT id, customer_id, balance_cents FROM wallets WHERE id=$1`, walletID).
			Scan(&cur.ID, &cur.CustomerID, &cur.BalanceCents)
		if errors.Is(err2, pgx.ErrNoRows) {
			return market.Wallet{}, market.ErrWalletNotFound
		}
		if err2 != nil {
			return market.Wallet{}, err2
		}
		return market.Wallet{}, &market.InsufficientFundsError{
			CustomerID: cur.CustomerID, Requested: -delta, Balance: cur.BalanceCents,
		}
	}
	return w, err
}

// ---- customers & sellers ----

func (s *Store) GetCustomer(ctx context.Context, id string) (market.Customer, error) {
	return s.scanCustomer(s.q.QueryRow(ctx,
		`SELECT id, name, email, password_hash, phone FROM customers WHERE id=$1`, id))
}

func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (market.Customer, error) {
	return s.scanCustomer(s.q.QueryRow(ctx,
		`SELECT id, name, email, password_hash, phone FROM customers WHERE email=$1`, email))
}

func (s *Store) scanCustomer(row pgx.Row) (market.Customer, error) {
	var c market.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return market.Customer{}, market.ErrCustomerNotFound
	}
	return c, err
}

func (s *Store) InsertCustomer(ctx context.Context, c market.Customer) (market.Customer, error) {
	_, err := s.q.Exec(ctx, `
		INSERT INTO customers(id, name, email, password_hash, phone) VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Name, c.Email, c.PasswordHash, c.Phone)
	if isUniqueViolation(err) {
		return market.Customer{}, market.ErrEmailExists
	}
	return c, err
}

const sellerCols = `id, name, email, password_hash, store_name, phone, business_location, niche`

func (s *Store) GetSeller(ctx context.Context, id string) (market.Seller, error) {
	return s.scanSeller(s.q.QueryRow(ctx, `SELECT `+sellerCols+` FROM sellers WHERE id=$1`, id))
}

func (s *Store) GetSellerByEmail(ctx context.Context, email string) (market.Seller, error) {
	return s.scanSeller(s.q.QueryRow(ctx, `SELECT `+sellerCols+` FROM sellers WHERE email=$1`, email))
}

func (s *Store) scanSeller(row pgx.Row) (market.Seller, error) {
	var sl market.Seller
	err := row.Scan(&sl.ID, &sl.Name, &sl.Email, &sl.PasswordHash, &sl.StoreName, &sl.Phone, &sl.BusinessLocation, &sl.Niche)
	if errors.Is(err, pgx.ErrNoRows) {
		return market.Seller{}, market.ErrSellerNotFound
	}
	return sl, err
}

func (s *Store) InsertSeller(ctx context.Context, sl market.Seller) (market.Seller, error) {
	_, err := s.q.Exec(ctx, `
		INSERT INTO sellers(id, name, email, password_hash, store_name, phone, business_location, niche)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		sl.ID, sl.Name, sl.Email, sl.PasswordHash, sl.StoreName, sl.Phone, sl.BusinessLocation, sl.Niche)
	if isUniqueViolation(err) {
		return market.Seller{}, market.ErrEmailExists
	}
	return sl, err
}
