package market

const (
	TopicOrderPlaced        = "order.placed"
	TopicOrderStatusChanged = "order.status.changed"
	TopicWalletAdjusted     = "wallet.adjusted"
)

// Partition key = order_id / customer_id supaya event untuk satu entitas
// terjaga urutannya.
func PartitionKey(id string) []byte { return []byte(id) }
