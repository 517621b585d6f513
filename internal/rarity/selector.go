// Package rarity implements the pack draw: one uniform sample against a
// cumulative weight table. It is pure and does no I/O; callers inject the
// random source so draws are reproducible in tests.
package rarity

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/mintforge/packvault/internal/domain"
)

// Source supplies uniform random integers. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a uniform int in [0, n). n must be > 0.
	IntN(n int) int
}

// NewSource returns a Source seeded from the system entropy pool. The
// returned source is safe for concurrent use; the engine serves many
// callers at once.
func NewSource() Source {
	return &lockedSource{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Selector draws rarity tiers from pack weight tables.
type Selector struct {
	src Source
}

// NewSelector creates a Selector using the given random source.
func NewSelector(src Source) *Selector {
	return &Selector{src: src}
}

// SelectRarity draws one rarity tier from the table. The cumulative
// distribution is built in declaration order so tie-breaks are deterministic
// given a fixed seed. Weights are assumed valid: ValidateTable runs at pack
// activation, not on the hot path.
func (s *Selector) SelectRarity(weights []domain.RarityWeight) (domain.RarityTier, error) {
	total := 0
	for _, w := range weights {
		total += w.Weight
	}
	if total <= 0 {
		return "", fmt.Errorf("%w: empty weight table", domain.ErrInvalidConfiguration)
	}

	sample := s.src.IntN(total)
	cumulative := 0
	for _, w := range weights {
		cumulative += w.Weight
		if sample < cumulative {
			return w.Rarity, nil
		}
	}

	// Unreachable with a valid table; the last bound equals total.
	return weights[len(weights)-1].Rarity, nil
}

// ValidateTable checks a pack's weight table against its declared total.
// Called at pack activation time; a failure is fatal for that pack version.
func ValidateTable(weights []domain.RarityWeight, declaredTotal int) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: weight table is empty", domain.ErrInvalidConfiguration)
	}

	seen := make(map[domain.RarityTier]bool, len(weights))
	sum := 0
	for _, w := range weights {
		if w.Weight <= 0 {
			return fmt.Errorf("%w: non-positive weight %d for rarity %s",
				domain.ErrInvalidConfiguration, w.Weight, w.Rarity)
		}
		if seen[w.Rarity] {
			return fmt.Errorf("%w: duplicate rarity %s",
				domain.ErrInvalidConfiguration, w.Rarity)
		}
		seen[w.Rarity] = true
		sum += w.Weight
	}

	if sum != declaredTotal {
		return fmt.Errorf("%w: weights sum to %d, declared total is %d",
			domain.ErrInvalidConfiguration, sum, declaredTotal)
	}
	return nil
}
