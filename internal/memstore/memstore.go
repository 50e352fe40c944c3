// Package memstore menyediakan implementasi market.Store berbasis map di
// memori. Dipakai untuk test dan untuk menjalankan API secara lokal tanpa
// Postgres.
package memstore

import (
	"context"
	"sync"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
)

type data struct {
	products         map[string]market.Product
	orders           map[string]market.Order
	orderSeq         []string // urutan insert, untuk listing yang stabil
	wallets          map[string]market.Wallet
	walletByCustomer map[string]string
	customers        map[string]market.Customer
	customerByEmail  map[string]string
	sellers          map[string]market.Seller
	sellerByEmail    map[string]string
}

func newData() *data {
	return &data{
		products:         map[string]market.Product{},
		orders:           map[string]market.Order{},
		wallets:          map[string]market.Wallet{},
		walletByCustomer: map[string]string{},
		customers:        map[string]market.Customer{},
		customerByEmail:  map[string]string{},
		sellers:          map[string]market.Seller{},
		sellerByEmail:    map[string]string{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	c.orderSeq = append(c.orderSeq, d.orderSeq...)
	for k, v := range d.wallets {
		c.wallets[k] = v
	}
	for k, v := range d.walletByCustomer {
		c.walletByCustomer[k] = v
	}
	for k, v := range d.customers {
		c.customers[k] = v
	}
	for k, v := range d.customerByEmail {
		c.customerByEmail[k] = v
	}
	for k, v := range d.sellers {
		c.sellers[k] = v
	}
	for k, v := range d.sellerByEmail {
		c.sellerByEmail[k] = v
	}
	return c
}

type Store struct {
	mu sync.Mutex
	d  *data
}

func New() *Store { return &Store{d: newData()} }

// WithTx: unit atomik diserialisasi lewat mutex; fn bekerja di atas clone dan
// hasilnya baru di-swap kalau fn sukses, jadi kegagalan tidak meninggalkan
// state parsial.
func (s *Store) WithTx(ctx context.Context, fn func(tx market.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.d.clone()
	if err := fn(&txStore{d: c}); err != nil {
		return err
	}
	s.d = c
	return nil
}

func (s *Store) run(fn func(d *data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.d)
}

// txStore beroperasi langsung di clone; lock sudah dipegang oleh WithTx.
type txStore struct{ d *data }

func (t *txStore) WithTx(ctx context.Context, fn func(tx market.Store) error) error {
	return fn(t) // nested: pakai unit yang sama
}

func (t *txStore) run(fn func(d *data) error) error { return fn(t.d) }

type runner interface {
	run(fn func(d *data) error) error
}

// ---- products ----

func getProduct(d *data, id string) (market.Product, error) {
	p, ok := d.products[id]
	if !ok {
		return market.Product{}, market.ErrProductNotFound
	}
	return p, nil
}

func storeGetProduct(r runner, id string) (market.Product, error) {
	var p market.Product
	err := r.run(func(d *data) error {
		var err error
		p, err = getProduct(d, id)
		return err
	})
	return p, err
}

func (s *Store) GetProduct(ctx context.Context, id string) (market.Product, error) {
	return storeGetProduct(s, id)
}

func (t *txStore) GetProduct(ctx context.Context, id string) (market.Product, error) {
	return storeGetProduct(t, id)
}

// Row lock tidak relevan di memori: seluruh unit sudah serial di bawah mutex.
func (s *Store) GetProductForUpdate(ctx context.Context, id string) (market.Product, error) {
	return storeGetProduct(s, id)
}

func (t *txStore) GetProductForUpdate(ctx context.Context, id string) (market.Product, error) {
	return storeGetProduct(t, id)
}

func insertProduct(r runner, p market.Product) (market.Product, error) {
	err := r.run(func(d *data) error {
		d.products[p.ID] = p
		return nil
	})
	return p, err
}

func (s *Store) InsertProduct(ctx context.Context, p market.Product) (market.Product, error) {
	return insertProduct(s, p)
}

func (t *txStore) InsertProduct(ctx context.Context, p market.Product) (market.Product, error) {
	return insertProduct(t, p)
}

func updateProduct(r runner, p market.Product) (market.Product, error) {
	err := r.run(func(d *data) error {
		if _, ok := d.products[p.ID]; !ok {
			return market.ErrProductNotFound
		}
		d.products[p.ID] = p
		return nil
	})
	return p, err
}

func (s *Store) UpdateProduct(ctx context.Context, p market.Product) (market.Product, error) {
	return updateProduct(s, p)
}

func (t *txStore) UpdateProduct(ctx context.Context, p market.Product) (market.Product, error) {
	return updateProduct(t, p)
}

func updateProductStock(r runner, id string, quantity int) error {
	return r.run(func(d *data) error {
		p, ok := d.products[id]
		if !ok {
			return market.ErrProductNotFound
		}
		p.Quantity = quantity
		d.products[id] = p
		return nil
	})
}

func (s *Store) UpdateProductStock(ctx context.Context, id string, quantity int) error {
	return updateProductStock(s, id, quantity)
}

func (t *txStore) UpdateProductStock(ctx context.Context, id string, quantity int) error {
	return updateProductStock(t, id, quantity)
}

func deleteProduct(r runner, id string) error {
	return r.run(func(d *data) error {
		if _, ok := d.products[id]; !ok {
			return market.ErrProductNotFound
		}
		delete(d.products, id)
		return nil
	})
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error { return deleteProduct(s, id) }

func (t *txStore) DeleteProduct(ctx context.Context, id string) error { return deleteProduct(t, id) }

func listProducts(r runner) ([]market.Product, error) {
	var out []market.Product
	err := r.run(func(d *data) error {
		for _, p := range d.products {
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (s *Store) ListProducts(ctx context.Context) ([]market.Product, error) {
	return listProducts(s)
}

func (t *txStore) ListProducts(ctx context.Context) ([]market.Product, error) {
	return listProducts(t)
}

// ---- orders ----

func insertOrder(r runner, o market.Order) (market.Order, error) {
	err := r.run(func(d *data) error {
		d.orders[o.ID] = o
		d.orderSeq = append(d.orderSeq, o.ID)
		return nil
	})
	return o, err
}

func (s *Store) InsertOrder(ctx context.Context, o market.Order) (market.Order, error) {
	return insertOrder(s, o)
}

func (t *txStore) InsertOrder(ctx context.Context, o market.Order) (market.Order, error) {
	return insertOrder(t, o)
}

func getOrder(r runner, id string) (market.Order, error) {
	var o market.Order
	err := r.run(func(d *data) error {
		var ok bool
		o, ok = d.orders[id]
		if !ok {
			return market.ErrOrderNotFound
		}
		return nil
	})
	return o, err
}

func (s *Store) GetOrder(ctx context.Context, id string) (market.Order, error) {
	return getOrder(s, id)
}

func (t *txStore) GetOrder(ctx context.Context, id string) (market.Order, error) {
	return getOrder(t, id)
}

func listOrdersByCustomer(r runner, customerID string, offset, limit int) ([]market.Order, error) {
	out := []market.Order{}
	err := r.run(func(d *data) error {
		skipped := 0
		for _, id := range d.orderSeq {
			o := d.orders[id]
			if o.CustomerID != customerID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			out = append(out, o)
			if len(out) >= limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) ListOrdersByCustomer(ctx context.Context, customerID string, offset, limit int) ([]market.Order, error) {
	return listOrdersByCustomer(s, customerID, offset, limit)
}

func (t *txStore) ListOrdersByCustomer(ctx context.Context, customerID string, offset, limit int) ([]market.Order, error) {
	return listOrdersByCustomer(t, customerID, offset, limit)
}

func listOrdersBySeller(r runner, sellerID string) ([]market.Order, error) {
	out := []market.Order{}
	err := r.run(func(d *data) error {
		for _, id := range d.orderSeq {
			if o := d.orders[id]; o.SellerID == sellerID {
				out = append(out, o)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) ListOrdersBySeller(ctx context.Context, sellerID string) ([]market.Order, error) {
	return listOrdersBySeller(s, sellerID)
}

func (t *txStore) ListOrdersBySeller(ctx context.Context, sellerID string) ([]market.Order, error) {
	return listOrdersBySeller(t, sellerID)
}

func updateOrderStatus(r runner, id string, status market.Status) error {
	return r.run(func(d *data) error {
		o, ok := d.orders[id]
		if !ok {
			return market.ErrOrderNotFound
		}
		o.Status = status
		d.orders[id] = o
		return nil
	})
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status market.Status) error {
	return updateOrderStatus(s, id, status)
}

func (t *txStore) UpdateOrderStatus(ctx context.Context, id string, status market.Status) error {
	return updateOrderStatus(t, id, status)
}

// ---- wallets ----

func getWalletByCustomer(r runner, customerID string) (market.Wallet, error) {
	var w market.Wallet
	err := r.run(func(d *data) error {
		id, ok := d.walletByCustomer[customerID]
		if !ok {
			return market.ErrWalletNotFound
		}
		w = d.wallets[id]
		return nil
	})
	return w, err
}

func (s *Store) GetWalletByCustomer(ctx context.Context, customerID string) (market.Wallet, error) {
	return getWalletByCustomer(s, customerID)
}

func (t *txStore) GetWalletByCustomer(ctx context.Context, customerID string) (market.Wallet, error) {
	return getWalletByCustomer(t, customerID)
}

func insertWallet(r runner, w market.Wallet) (market.Wallet, error) {
	err := r.run(func(d *data) error {
		if _, ok := d.walletByCustomer[w.CustomerID]; ok {
			return market.ErrWalletExists
		}
		d.wallets[w.ID] = w
		d.walletByCustomer[w.CustomerID] = w.ID
		return nil
	})
	return w, err
}

func (s *Store) InsertWallet(ctx context.Context, w market.Wallet) (market.Wallet, error) {
	return insertWallet(s, w)
}

func (t *txStore) InsertWallet(ctx context.Context, w market.Wallet) (market.Wallet, error) {
	return insertWallet(t, w)
}

func applyWalletDelta(r runner, walletID string, delta int64) (market.Wallet, error) {
	var w market.Wallet
	err := r.run(func(d *data) error {
		cur, ok := d.wallets[walletID]
		if !ok {
			return market.ErrWalletNotFound
		}
		next := cur.BalanceCents + delta
		if next < 0 {
			return &market.InsufficientFundsError{
				CustomerID: cur.CustomerID,
				Requested:  -delta,
				Balance:    cur.BalanceCents,
			}
		}
		cur.BalanceCents = next
		d.wallets[walletID] = cur
		w = cur
		return nil
	})
	return w, err
}

func (s *Store) ApplyWalletDelta(ctx context.Context, walletID string, delta int64) (market.Wallet, error) {
	return applyWalletDelta(s, walletID, delta)
}

func (t *txStore) ApplyWalletDelta(ctx context.Context, walletID string, delta int64) (market.Wallet, error) {
	return applyWalletDelta(t, walletID, delta)
}

// ---- customers & sellers ----

func getCustomer(r runner, id string) (market.Customer, error) {
	var c market.Customer
	err := r.run(func(d *data) error {
		var ok bool
		c, ok = d.customers[id]
		if !ok {
			return market.ErrCustomerNotFound
		}
		return nil
	})
	return c, err
}

func (s *Store) GetCustomer(ctx context.Context, id string) (market.Customer, error) {
	return getCustomer(s, id)
}

func (t *txStore) GetCustomer(ctx context.Context, id string) (market.Customer, error) {
	return getCustomer(t, id)
}

func getCustomerByEmail(r runner, email string) (market.Customer, error) {
	var c market.Customer
	err := r.run(func(d *data) error {
		id, ok := d.customerByEmail[email]
		if !ok {
			return market.ErrCustomerNotFound
		}
		c = d.customers[id]
		return nil
	})
	return c, err
}

func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (market.Customer, error) {
	return getCustomerByEmail(s, email)
}

func (t *txStore) GetCustomerByEmail(ctx context.Context, email string) (market.Customer, error) {
	return getCustomerByEmail(t, email)
}

func insertCustomer(r runner, c market.Customer) (market.Customer, error) {
	err := r.run(func(d *data) error {
		if _, ok := d.customerByEmail[c.Email]; ok {
			return market.ErrEmailExists
		}
		d.customers[c.ID] = c
		d.customerByEmail[c.Email] = c.ID
		return nil
	})
	if err != nil {
		return market.Customer{}, err
	}
	return c, nil
}

func (s *Store) InsertCustomer(ctx context.Context, c market.Customer) (market.Customer, error) {
	return insertCustomer(s, c)
}

func (t *txStore) InsertCustomer(ctx context.Context, c market.Customer) (market.Customer, error) {
	return insertCustomer(t, c)
}

func getSeller(r runner, id string) (market.Seller, error) {
	var sl market.Seller
	err := r.run(func(d *data) error {
		var ok bool
		sl, ok = d.sellers[id]
		if !ok {
			return market.ErrSellerNotFound
		}
		return nil
	})
	return sl, err
}

func (s *Store) GetSeller(ctx context.Context, id string) (market.Seller, error) {
	return getSeller(s, id)
}

func (t *txStore) GetSeller(ctx context.Context, id string) (market.Seller, error) {
	return getSeller(t, id)
}

func getSellerByEmail(r runner, email string) (market.Seller, error) {
	var sl market.Seller
	err := r.run(func(d *data) error {
		id, ok := d.sellerByEmail[email]
		if !ok {
			return market.ErrSellerNotFound
		}
		sl = d.sellers[id]
		return nil
	})
	return sl, err
}

func (s *Store) GetSellerByEmail(ctx context.Context, email string) (market.Seller, error) {
	return getSellerByEmail(s, email)
}

func (t *txStore) GetSellerByEmail(ctx context.Context, email string) (market.Seller, error) {
	return getSellerByEmail(t, email)
}

func insertSeller(r runner, sl market.Seller) (market.Seller, error) {
	err := r.run(func(d *data) error {
		if _, ok := d.sellerByEmail[sl.Email]; ok {
			return market.ErrEmailExists
		}
		d.sellers[sl.ID] = sl
		d.sellerByEmail[sl.Email] = sl.ID
		return nil
	})
	if err != nil {
		return market.Seller{}, err
	}
	return sl, nil
}

func (s *Store) InsertSeller(ctx context.Context, sl market.Seller) (market.Seller, error) {
	return insertSeller(s, sl)
}

func (t *txStore) InsertSeller(ctx context.Context, sl market.Seller) (market.Seller, error) {
	return insertSeller(t, sl)
}
