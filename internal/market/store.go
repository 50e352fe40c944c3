package market

import "context"

// Store adalah gateway persistence yang dipakai engine & ledger.
// Implementasi: pgstore (Postgres) dan memstore (in-memory, untuk test).
type Store interface {
	// WithTx menjalankan fn dalam satu unit atomik: commit semua atau batal
	// semua. Store yang diberikan ke fn hanya valid selama fn berjalan.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	GetProduct(ctx context.Context, id string) (Product, error)
	// GetProductForUpdate mengunci baris product; hanya valid di dalam WithTx.
	GetProductForUpdate(ctx context.Context, id string) (Product, error)
	InsertProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProductStock(ctx context.Context, id string, quantity int) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]Product, error)

	InsertOrder(ctx context.Context, o Order) (Order, error)
	GetOrder(ctx context.Context, id string) (Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string, offset, limit int) ([]Order, error)
	ListOrdersBySeller(ctx context.Context, sellerID string) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status Status) error

	GetWalletByCustomer(ctx context.Context, customerID string) (Wallet, error)
	InsertWallet(ctx context.Context, w Wallet) (Wallet, error)
	// ApplyWalletDelta menambah/mengurangi saldo secara atomik per baris.
	// Delta negatif yang membuat saldo < 0 gagal dengan InsufficientFundsError.
	ApplyWalletDelta(ctx context.Context, walletID string, delta int64) (Wallet, error)

	GetCustomer(ctx context.Context, id string) (Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (Customer, error)
	InsertCustomer(ctx context.Context, c Customer) (Customer, error)

	GetSeller(ctx context.Context, id string) (Seller, error)
	GetSellerByEmail(ctx context.Context, email string) (Seller, error)
	InsertSeller(ctx context.Context, s Seller) (Seller, error)
}
