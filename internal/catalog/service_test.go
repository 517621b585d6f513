package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/packvault/internal/domain"
)

func bronzePack() *domain.Pack {
	return &domain.Pack{
		ID:          "bronze",
		Name:        "Bronze",
		Price:       25,
		WeightTotal: 100,
		Active:      true,
		Version:     1,
		Weights: []domain.RarityWeight{
			{Rarity: domain.RarityCommon, Weight: 60},
			{Rarity: domain.RarityUncommon, Weight: 25},
			{Rarity: domain.RarityRare, Weight: 10},
			{Rarity: domain.RarityEpic, Weight: 4},
			{Rarity: domain.RarityLegendary, Weight: 1},
		},
	}
}

func TestGetPack_CachesValidatedPack(t *testing.T) {
	repo := new(MockCatalogRepo)
	repo.On("GetPack", mock.Anything, "bronze").Return(bronzePack(), nil).Once()

	svc, err := NewService(repo)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := svc.GetPack(ctx, "bronze")
	require.NoError(t, err)

	// Second read must come from the cache; the mock allows only one call.
	second, err := svc.GetPack(ctx, "bronze")
	require.NoError(t, err)
	assert.Same(t, first, second)
	repo.AssertExpectations(t)
}

func TestGetPack_RejectsInactivePack(t *testing.T) {
	pack := bronzePack()
	pack.Active = false

	repo := new(MockCatalogRepo)
	repo.On("GetPack", mock.Anything, "bronze").Return(pack, nil)

	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.GetPack(context.Background(), "bronze")
	assert.ErrorIs(t, err, domain.ErrPackInactive)
}

func TestGetPack_RejectsMalformedWeights(t *testing.T) {
	pack := bronzePack()
	pack.Weights[0].Weight = 70 // sum is now 110 against a declared total of 100

	repo := new(MockCatalogRepo)
	repo.On("GetPack", mock.Anything, "bronze").Return(pack, nil)

	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.GetPack(context.Background(), "bronze")
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestListPackItems_AnnotatesRemainingSupply(t *testing.T) {
	repo := new(MockCatalogRepo)
	repo.On("GetPackItems", mock.Anything, "bronze").Return([]domain.ItemDefinition{
		unlimited("pebble", domain.RarityCommon),
		limited("longsword", domain.RarityRare, 10, 4),
	}, nil)

	svc, err := NewService(repo)
	require.NoError(t, err)

	items, err := svc.ListPackItems(context.Background(), "bronze")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, -1, items[0].Remaining)
	assert.Equal(t, 6, items[1].Remaining)
}

func TestValidatePack(t *testing.T) {
	repo := new(MockCatalogRepo)
	repo.On("GetPack", mock.Anything, "bronze").Return(bronzePack(), nil)

	svc, err := NewService(repo)
	require.NoError(t, err)

	assert.NoError(t, svc.ValidatePack(context.Background(), "bronze"))
}
