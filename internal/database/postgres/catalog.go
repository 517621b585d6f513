// Package postgres implements the engine's storage contracts on PostgreSQL
// using pgx. Scarcity accounting relies on conditional single-row updates,
// so correctness holds at the default read-committed isolation level.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mintforge/packvault/internal/domain"
)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetPack returns a pack with its weight table in declaration order.
func (r *CatalogRepository) GetPack(ctx context.Context, packID string) (*domain.Pack, error) {
	query := `
		SELECT pack_id, name, price, weight_total, active, version, created_at
		FROM packs
		WHERE pack_id = $1
	`
	var pack domain.Pack
	err := r.db.QueryRow(ctx, query, packID).Scan(
		&pack.ID, &pack.Name, &pack.Price, &pack.WeightTotal,
		&pack.Active, &pack.Version, &pack.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPackNotFound, packID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPack, err)
	}

	pack.Weights, err = r.getWeights(ctx, packID)
	if err != nil {
		return nil, err
	}
	return &pack, nil
}

func (r *CatalogRepository) getWeights(ctx context.Context, packID string) ([]domain.RarityWeight, error) {
	query := `
		SELECT rarity, weight
		FROM pack_rarity_weights
		WHERE pack_id = $1
		ORDER BY position
	`
	rows, err := r.db.Query(ctx, query, packID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPackWeights, err)
	}
	defer rows.Close()

	var weights []domain.RarityWeight
	for rows.Next() {
		var w domain.RarityWeight
		if err := rows.Scan(&w.Rarity, &w.Weight); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPackWeights, err)
		}
		weights = append(weights, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPackWeights, err)
	}
	return weights, nil
}

// ListActivePacks returns all purchasable packs, weight tables included.
func (r *CatalogRepository) ListActivePacks(ctx context.Context) ([]domain.Pack, error) {
	query := `
		SELECT pack_id, name, price, weight_total, active, version, created_at
		FROM packs
		WHERE active
		ORDER BY pack_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPacks, err)
	}
	defer rows.Close()

	var packs []domain.Pack
	for rows.Next() {
		var pack domain.Pack
		if err := rows.Scan(&pack.ID, &pack.Name, &pack.Price, &pack.WeightTotal,
			&pack.Active, &pack.Version, &pack.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPacks, err)
		}
		packs = append(packs, pack)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPacks, err)
	}

	for i := range packs {
		packs[i].Weights, err = r.getWeights(ctx, packs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return packs, nil
}

// GetPackItems returns the pack's eligible items in declaration order.
// MintCount is a point-in-time read; TryReserve is the authoritative check.
func (r *CatalogRepository) GetPackItems(ctx context.Context, packID string) ([]domain.ItemDefinition, error) {
	query := `
		SELECT i.item_id, i.name, i.rarity, i.policy, i.max_count, i.mint_count,
		       i.collection_id, i.active
		FROM pack_items pi
		JOIN item_definitions i ON i.item_id = pi.item_id
		WHERE pi.pack_id = $1
		ORDER BY pi.position
	`
	rows, err := r.db.Query(ctx, query, packID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPackItems, err)
	}
	defer rows.Close()

	var items []domain.ItemDefinition
	for rows.Next() {
		var item domain.ItemDefinition
		if err := rows.Scan(&item.ID, &item.Name, &item.Rarity, &item.Policy,
			&item.MaxCount, &item.MintCount, &item.CollectionID, &item.Active); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPackItems, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPackItems, err)
	}

	if items == nil {
		// Distinguish an unknown pack from an empty one.
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM packs WHERE pack_id = $1)`, packID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPackItems, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrPackNotFound, packID)
		}
	}
	return items, nil
}
