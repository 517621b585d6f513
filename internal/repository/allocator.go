package repository

import (
	"context"

	"github.com/mintforge/packvault/internal/domain"
)

// Ledger is the scarcity ledger contract. TryReserve must be linearizable
// per item: two concurrent reservations for the last remaining slot resolve
// so that exactly one succeeds and the other observes domain.ErrExhausted.
// Implementations enforce this with the storage layer's atomic conditional
// update, never with read-then-write.
type Ledger interface {
	// TryReserve atomically increments the item's mint count if supply
	// remains and returns the post-increment value. For capped items that
	// value is the serial number. Returns domain.ErrExhausted when the item
	// has no remaining supply.
	TryReserve(ctx context.Context, itemID string) (int, error)
}

// Allocator owns the allocation transaction boundary and the append-only
// audit log.
type Allocator interface {
	// BeginTx opens the atomic transaction all allocation writes happen in.
	BeginTx(ctx context.Context) (AllocationTx, error)

	// ListAllocations reads a user's allocation history, newest first.
	ListAllocations(ctx context.Context, userID string, limit int) ([]domain.AllocationRecord, error)
}

// AllocationTx is the atomic unit of an allocation: the funds check, the
// debit, the scarcity reservation, the grant, and the audit record either
// all commit or all roll back. Wallet balance and item mint counts are
// mutated nowhere else.
type AllocationTx interface {
	Ledger

	// GetWalletForUpdate reads the wallet with a row lock so the funds check
	// and the debit see the same balance.
	GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error)

	// DebitWallet subtracts amount and returns the new balance. The storage
	// constraint keeps the balance non-negative; a violation here means the
	// funds check was skipped and is an internal error.
	DebitWallet(ctx context.Context, userID string, amount int) (int, error)

	// InsertGrant records ownership of one item instance.
	InsertGrant(ctx context.Context, grant domain.OwnershipGrant) error

	// InsertAllocationRecord appends the immutable audit row.
	InsertAllocationRecord(ctx context.Context, rec domain.AllocationRecord) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
