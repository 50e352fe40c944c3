package market

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCanceled   Status = "canceled"
)

var knownStatus = map[Status]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCanceled:   true,
}

func (s Status) Valid() bool { return knownStatus[s] }

// Transisi antar status sengaja tidak dibatasi: seller yang berwenang boleh
// memindahkan order ke status mana pun, termasuk mundur (delivered -> pending).
func CanTransition(from, to Status) bool {
	return knownStatus[from] && knownStatus[to]
}
