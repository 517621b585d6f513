package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mintforge/packvault/internal/domain"
)

// WalletRepository implements repository.Wallet for PostgreSQL
type WalletRepository struct {
	db *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetWallet reads a wallet without locking it.
func (r *WalletRepository) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `
		SELECT user_id, balance, updated_at
		FROM wallets
		WHERE user_id = $1
	`
	var w domain.Wallet
	err := r.db.QueryRow(ctx, query, userID).Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, userID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWallet, err)
	}
	return &w, nil
}

// CreditWallet adds funds, creating the wallet on first use. Used by
// operational tooling; allocations only ever debit.
func (r *WalletRepository) CreditWallet(ctx context.Context, userID string, amount int) (int, error) {
	query := `
		INSERT INTO wallets (user_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET balance = wallets.balance + $2, updated_at = NOW()
		RETURNING balance
	`
	var balance int
	if err := r.db.QueryRow(ctx, query, userID, amount).Scan(&balance); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDebitWallet, err)
	}
	return balance, nil
}
