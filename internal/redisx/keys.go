package redisx

import "time"

const (
	// Cache order: order_status:{order_id} -> market.Order (JSON)
	KeyOrderStatus = "order_status:%s"

	// Cache wallet: wallet_balance:{customer_id} -> market.Wallet (JSON)
	KeyWalletBalance = "wallet_balance:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStatusCache  = 5 * time.Minute
	TTLBalanceCache = 1 * time.Minute
	TTLDedup        = 48 * time.Hour
)
