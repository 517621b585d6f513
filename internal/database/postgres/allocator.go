package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mintforge/packvault/internal/domain"
	"github.com/mintforge/packvault/internal/repository"
)

// AllocatorRepository implements repository.Allocator for PostgreSQL
type AllocatorRepository struct {
	db *pgxpool.Pool
}

// NewAllocatorRepository creates a new AllocatorRepository
func NewAllocatorRepository(db *pgxpool.Pool) *AllocatorRepository {
	return &AllocatorRepository{db: db}
}

// BeginTx starts a new allocation transaction. Read committed is sufficient:
// the wallet row lock and the conditional mint-count update carry the
// correctness guarantees, not the isolation level.
func (r *AllocatorRepository) BeginTx(ctx context.Context) (repository.AllocationTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &allocationTx{tx: tx}, nil
}

// ListAllocations reads a user's allocation history, newest first.
func (r *AllocatorRepository) ListAllocations(ctx context.Context, userID string, limit int) ([]domain.AllocationRecord, error) {
	query := `
		SELECT allocation_id, pack_id, user_id, amount, COALESCE(item_id, ''),
		       serial_number, outcome, reason, created_at
		FROM allocation_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAllocations, err)
	}
	defer rows.Close()

	var records []domain.AllocationRecord
	for rows.Next() {
		var rec domain.AllocationRecord
		if err := rows.Scan(&rec.AllocationID, &rec.PackID, &rec.UserID, &rec.Amount,
			&rec.ItemID, &rec.SerialNumber, &rec.Outcome, &rec.Reason, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAllocations, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAllocations, err)
	}
	return records, nil
}

// allocationTx implements repository.AllocationTx
type allocationTx struct {
	tx pgx.Tx
}

// GetWalletForUpdate locks the wallet row for the life of the transaction so
// the funds check and the debit see the same balance.
func (t *allocationTx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `
		SELECT user_id, balance, updated_at
		FROM wallets
		WHERE user_id = $1
		FOR UPDATE
	`
	var w domain.Wallet
	err := t.tx.QueryRow(ctx, query, userID).Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, userID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWallet, err)
	}
	return &w, nil
}

// DebitWallet subtracts amount from a balance the caller already verified
// under the row lock. The balance guard in the WHERE clause means a missed
// check surfaces as an internal error rather than a negative balance.
func (t *allocationTx) DebitWallet(ctx context.Context, userID string, amount int) (int, error) {
	query := `
		UPDATE wallets
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING balance
	`
	var balance int
	err := t.tx.QueryRow(ctx, query, userID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: debit %d rejected for user %s", domain.ErrInternal, amount, userID)
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDebitWallet, err)
	}
	return balance, nil
}

// TryReserve advances the item's mint count by one if supply remains. The
// conditional single-row UPDATE is the scarcity ledger's linearization
// point: concurrent reservations for the last slot serialize on the row
// lock and exactly one sees the guard still open.
func (t *allocationTx) TryReserve(ctx context.Context, itemID string) (int, error) {
	query := `
		UPDATE item_definitions
		SET mint_count = mint_count + 1
		WHERE item_id = $1
		  AND (policy = 'unlimited'
		       OR (policy = 'limited' AND mint_count < max_count)
		       OR (policy = 'unique' AND mint_count < 1))
		RETURNING mint_count
	`
	var mintCount int
	err := t.tx.QueryRow(ctx, query, itemID).Scan(&mintCount)
	if err == nil {
		return mintCount, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToReserveItem, err)
	}

	// No row updated: either the item is unknown or its supply is gone.
	var exists bool
	if err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM item_definitions WHERE item_id = $1)`, itemID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToReserveItem, err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrExhausted, itemID)
}

// InsertGrant records ownership of one item instance.
func (t *allocationTx) InsertGrant(ctx context.Context, grant domain.OwnershipGrant) error {
	query := `
		INSERT INTO ownership_grants (grant_id, user_id, item_id, serial_number, granted_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := t.tx.Exec(ctx, query,
		grant.GrantID, grant.UserID, grant.ItemID, grant.SerialNumber, grant.GrantedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertGrant, err)
	}
	return nil
}

// InsertAllocationRecord appends the immutable audit row.
func (t *allocationTx) InsertAllocationRecord(ctx context.Context, rec domain.AllocationRecord) error {
	query := `
		INSERT INTO allocation_records
			(allocation_id, pack_id, user_id, amount, item_id, serial_number, outcome, reason, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)
	`
	_, err := t.tx.Exec(ctx, query,
		rec.AllocationID, rec.PackID, rec.UserID, rec.Amount,
		rec.ItemID, rec.SerialNumber, rec.Outcome, rec.Reason, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRecord, err)
	}
	return nil
}

// Commit commits the transaction
func (t *allocationTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *allocationTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
