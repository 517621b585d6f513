package domain

import "time"

// AllocationOutcome is the terminal state of an allocation attempt.
type AllocationOutcome string

const (
	OutcomeSuccess AllocationOutcome = "SUCCESS"
	OutcomeFailed  AllocationOutcome = "FAILED"
)

// AllocationRecord is the immutable audit row for one allocation attempt
// that reached the transaction boundary. Records are append-only: they are
// the system of record for supply accounting and are never mutated.
type AllocationRecord struct {
	AllocationID string            `json:"allocation_id"`
	PackID       string            `json:"pack_id"`
	UserID       string            `json:"user_id"`
	Amount       int               `json:"amount"`
	ItemID       string            `json:"item_id,omitempty"`
	SerialNumber *int              `json:"serial_number,omitempty"`
	Outcome      AllocationOutcome `json:"outcome"`
	Reason       string            `json:"reason,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// OwnershipGrant records a user owning one instance of an item. Capped
// items additionally carry a serial number, assigned 1..maxCount and never
// reused even if the grant is later reversed.
type OwnershipGrant struct {
	GrantID      string    `json:"grant_id"`
	UserID       string    `json:"user_id"`
	ItemID       string    `json:"item_id"`
	SerialNumber *int      `json:"serial_number,omitempty"`
	GrantedAt    time.Time `json:"granted_at"`
}

// Wallet is a user's currency balance. The balance is never negative and is
// mutated only inside allocation transactions.
type Wallet struct {
	UserID    string    `json:"user_id"`
	Balance   int       `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OpenResult is what a successful allocation returns to the caller.
type OpenResult struct {
	AllocationID string     `json:"allocation_id"`
	ItemID       string     `json:"item_id"`
	ItemName     string     `json:"item_name"`
	Rarity       RarityTier `json:"rarity"`
	SerialNumber *int       `json:"serial_number,omitempty"`
	NewBalance   int        `json:"new_balance"`
}
