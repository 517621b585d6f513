package domain

// Event type identifiers published after an allocation commits.
const (
	EventTypeAllocationSettled = "allocation.settled"
	EventTypeAllocationDenied  = "allocation.denied"
)

// AllocationSettledPayload is emitted after a successful allocation commits.
// Downstream consumers must treat AllocationID as the idempotency key:
// delivery is at-least-once.
type AllocationSettledPayload struct {
	AllocationID string `json:"allocation_id"`
	PackID       string `json:"pack_id"`
	UserID       string `json:"user_id"`
	ItemID       string `json:"item_id"`
	Rarity       string `json:"rarity"`
	SerialNumber *int   `json:"serial_number,omitempty"`
	Amount       int    `json:"amount"`
	Timestamp    int64  `json:"timestamp"`
}

// AllocationDeniedPayload is emitted for terminal denials that reached the
// transaction boundary (insufficient funds, catalog exhaustion).
type AllocationDeniedPayload struct {
	AllocationID string `json:"allocation_id"`
	PackID       string `json:"pack_id"`
	UserID       string `json:"user_id"`
	Reason       string `json:"reason"`
	Timestamp    int64  `json:"timestamp"`
}
