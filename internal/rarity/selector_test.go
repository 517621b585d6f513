package rarity

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/packvault/internal/domain"
)

// fixedSource returns a scripted sequence of samples.
type fixedSource struct {
	samples []int
	idx     int
}

func (f *fixedSource) IntN(n int) int {
	s := f.samples[f.idx%len(f.samples)]
	f.idx++
	return s % n
}

func bronzeWeights() []domain.RarityWeight {
	return []domain.RarityWeight{
		{Rarity: domain.RarityCommon, Weight: 60},
		{Rarity: domain.RarityUncommon, Weight: 25},
		{Rarity: domain.RarityRare, Weight: 10},
		{Rarity: domain.RarityEpic, Weight: 4},
		{Rarity: domain.RarityLegendary, Weight: 1},
	}
}

func TestSelectRarity_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		sample int
		want   domain.RarityTier
	}{
		{"first bucket lower bound", 0, domain.RarityCommon},
		{"first bucket upper bound", 59, domain.RarityCommon},
		{"second bucket lower bound", 60, domain.RarityUncommon},
		{"second bucket upper bound", 84, domain.RarityUncommon},
		{"rare bucket", 90, domain.RarityRare},
		{"epic bucket", 98, domain.RarityEpic},
		{"last bucket", 99, domain.RarityLegendary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelector(&fixedSource{samples: []int{tt.sample}})
			got, err := sel.SelectRarity(bronzeWeights())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectRarity_EmptyTable(t *testing.T) {
	sel := NewSelector(&fixedSource{samples: []int{0}})
	_, err := sel.SelectRarity(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestSelectRarity_DistributionConvergesToWeights(t *testing.T) {
	// Fixed seed keeps this deterministic across runs.
	sel := NewSelector(rand.New(rand.NewPCG(7, 13)))
	weights := bronzeWeights()

	const trials = 100_000
	counts := make(map[domain.RarityTier]int)
	for i := 0; i < trials; i++ {
		tier, err := sel.SelectRarity(weights)
		require.NoError(t, err)
		counts[tier]++
	}

	// Each observed frequency should be within ~5 standard deviations of the
	// declared probability.
	for _, w := range weights {
		p := float64(w.Weight) / 100.0
		expected := p * trials
		tolerance := 5 * math.Sqrt(p*(1-p)*trials)
		got := float64(counts[w.Rarity])
		assert.InDeltaf(t, expected, got, tolerance,
			"rarity %s drifted: got %d, expected %.0f", w.Rarity, counts[w.Rarity], expected)
	}
}

func TestValidateTable(t *testing.T) {
	t.Run("valid table passes", func(t *testing.T) {
		assert.NoError(t, ValidateTable(bronzeWeights(), 100))
	})

	t.Run("empty table rejected", func(t *testing.T) {
		err := ValidateTable(nil, 100)
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})

	t.Run("non-positive weight rejected", func(t *testing.T) {
		err := ValidateTable([]domain.RarityWeight{
			{Rarity: domain.RarityCommon, Weight: 100},
			{Rarity: domain.RarityRare, Weight: 0},
		}, 100)
		require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
		assert.Contains(t, err.Error(), "non-positive")
	})

	t.Run("sum mismatch rejected", func(t *testing.T) {
		err := ValidateTable([]domain.RarityWeight{
			{Rarity: domain.RarityCommon, Weight: 60},
			{Rarity: domain.RarityRare, Weight: 30},
		}, 100)
		require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
		assert.Contains(t, err.Error(), "declared total")
	})

	t.Run("duplicate rarity rejected", func(t *testing.T) {
		err := ValidateTable([]domain.RarityWeight{
			{Rarity: domain.RarityCommon, Weight: 50},
			{Rarity: domain.RarityCommon, Weight: 50},
		}, 100)
		require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("non-default declared total", func(t *testing.T) {
		weights := []domain.RarityWeight{
			{Rarity: domain.RarityCommon, Weight: 700},
			{Rarity: domain.RarityRare, Weight: 300},
		}
		assert.NoError(t, ValidateTable(weights, 1000))
		assert.ErrorIs(t, ValidateTable(weights, 100), domain.ErrInvalidConfiguration)
	})
}
