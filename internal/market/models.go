package market

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int       `json:"price_cents"`
	Quantity    int       `json:"quantity"` // stok tersedia, tidak boleh negatif
	SellerID    string    `json:"seller_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Order struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	SellerID   string    `json:"seller_id"` // disalin dari product saat order dibuat
	CustomerID string    `json:"customer_id"`
	Quantity   int       `json:"quantity"`
	Status     Status    `json:"status"` // lihat status.go
	CreatedAt  time.Time `json:"created_at"`
}

type Wallet struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customer_id"` // 1:1, satu wallet per customer
	BalanceCents int64  `json:"balance_cents"`
}

type Customer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Phone        string `json:"phone,omitempty"`
}

type Seller struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	PasswordHash     string `json:"-"`
	StoreName        string `json:"store_name"`
	Phone            string `json:"phone,omitempty"`
	BusinessLocation string `json:"business_location,omitempty"`
	Niche            string `json:"niche,omitempty"`
}
