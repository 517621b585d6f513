// Package catalog provides read-only access to packs and item definitions
// and computes which items are currently obtainable.
package catalog

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mintforge/packvault/internal/domain"
	"github.com/mintforge/packvault/internal/logger"
	"github.com/mintforge/packvault/internal/rarity"
	"github.com/mintforge/packvault/internal/repository"
)

// PackCacheSize bounds the pack definition cache. Pack versions are
// immutable once referenced by an allocation, so entries never go stale.
const PackCacheSize = 256

// Service defines the catalog read interface used by the allocation engine
// and the HTTP surface.
type Service interface {
	// GetPack returns an active pack with a validated weight table.
	GetPack(ctx context.Context, packID string) (*domain.Pack, error)

	// ListActivePacks returns all purchasable packs.
	ListActivePacks(ctx context.Context) ([]domain.Pack, error)

	// ResolveCandidates returns the obtainable items for a pack and rolled
	// rarity, ordered by availability score. See resolver.go for the policy.
	ResolveCandidates(ctx context.Context, packID string, tier domain.RarityTier) ([]Candidate, error)

	// ListPackItems returns the pack's full eligible catalog annotated with
	// remaining supply, for the storefront item listing.
	ListPackItems(ctx context.Context, packID string) ([]ItemAvailability, error)

	// ValidatePack checks a pack's weight table without touching the
	// catalog. Used by the admin validation endpoint.
	ValidatePack(ctx context.Context, packID string) error
}

// ItemAvailability annotates an item definition with its remaining supply
// for display. Remaining is -1 for unlimited items.
type ItemAvailability struct {
	Item      domain.ItemDefinition `json:"item"`
	Remaining int                   `json:"remaining"`
}

type service struct {
	repo  repository.Catalog
	packs *lru.Cache[string, *domain.Pack]
}

// NewService creates a catalog service backed by the given repository.
func NewService(repo repository.Catalog) (Service, error) {
	cache, err := lru.New[string, *domain.Pack](PackCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create pack cache: %w", err)
	}
	return &service{repo: repo, packs: cache}, nil
}

func (s *service) GetPack(ctx context.Context, packID string) (*domain.Pack, error) {
	if pack, ok := s.packs.Get(packID); ok {
		return pack, nil
	}

	pack, err := s.repo.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	if !pack.Active {
		return nil, fmt.Errorf("%w: %s", domain.ErrPackInactive, packID)
	}

	// The weight table was validated at activation; re-checking on first
	// load guards against catalog rows edited behind the engine's back.
	if err := rarity.ValidateTable(pack.Weights, pack.WeightTotal); err != nil {
		logger.FromContext(ctx).Error("Pack failed weight validation on load",
			"pack", packID, "version", pack.Version, "error", err)
		return nil, err
	}

	s.packs.Add(packID, pack)
	return pack, nil
}

func (s *service) ListActivePacks(ctx context.Context) ([]domain.Pack, error) {
	return s.repo.ListActivePacks(ctx)
}

func (s *service) ResolveCandidates(ctx context.Context, packID string, tier domain.RarityTier) ([]Candidate, error) {
	items, err := s.repo.GetPackItems(ctx, packID)
	if err != nil {
		return nil, err
	}

	cands, widened, err := resolveCandidates(items, tier)
	if err != nil {
		return nil, err
	}
	if widened {
		logger.FromContext(ctx).Info("Rarity tier exhausted, widened candidate search",
			"pack", packID, "rarity", tier)
	}
	return cands, nil
}

func (s *service) ListPackItems(ctx context.Context, packID string) ([]ItemAvailability, error) {
	items, err := s.repo.GetPackItems(ctx, packID)
	if err != nil {
		return nil, err
	}

	out := make([]ItemAvailability, 0, len(items))
	for _, item := range items {
		if !item.Active {
			continue
		}
		out = append(out, ItemAvailability{Item: item, Remaining: item.Remaining()})
	}
	return out, nil
}

func (s *service) ValidatePack(ctx context.Context, packID string) error {
	pack, err := s.repo.GetPack(ctx, packID)
	if err != nil {
		return err
	}
	return rarity.ValidateTable(pack.Weights, pack.WeightTotal)
}
