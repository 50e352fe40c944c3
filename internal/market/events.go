package market

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventWalletAdjusted     = "WalletAdjusted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "market-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya order_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type OrderPlacedPayload struct {
	OrderID    string `json:"order_id"`
	ProductID  string `json:"product_id"`
	SellerID   string `json:"seller_id"`
	CustomerID string `json:"customer_id"`
	Quantity   int    `json:"quantity"`
	Status     Status `json:"status"`
}

type OrderStatusChangedPayload struct {
	OrderID  string `json:"order_id"`
	SellerID string `json:"seller_id"`
	Status   Status `json:"status"`
}

type WalletAdjustedPayload struct {
	WalletID     string `json:"wallet_id"`
	CustomerID   string `json:"customer_id"`
	DeltaCents   int64  `json:"delta_cents"` // negatif untuk debit
	BalanceCents int64  `json:"balance_cents"`
}
