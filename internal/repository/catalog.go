package repository

import (
	"context"

	"github.com/mintforge/packvault/internal/domain"
)

// Catalog is read-only access to packs and item definitions. Catalog editing
// is owned by an external collaborator; this engine never writes it.
type Catalog interface {
	// GetPack returns a pack with its weight table, or domain.ErrPackNotFound.
	GetPack(ctx context.Context, packID string) (*domain.Pack, error)

	// ListActivePacks returns all currently purchasable packs.
	ListActivePacks(ctx context.Context) ([]domain.Pack, error)

	// GetPackItems returns the pack's eligible catalog with current mint
	// counts, in declaration order.
	GetPackItems(ctx context.Context, packID string) ([]domain.ItemDefinition, error)
}

// Wallet is access to user balances. Debits happen only inside an
// AllocationTx; credits come from funding flows outside the engine.
type Wallet interface {
	// GetWallet returns the user's wallet, or domain.ErrWalletNotFound.
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)

	// CreditWallet adds funds and returns the new balance, creating the
	// wallet on first use.
	CreditWallet(ctx context.Context, userID string, amount int) (int, error)
}
