package domain

import "time"

// RarityTier is a named probability bucket used both for display and
// for weighting the pack draw.
type RarityTier string

// Known rarity tiers, ordered from most to least common.
const (
	RarityCommon    RarityTier = "COMMON"
	RarityUncommon  RarityTier = "UNCOMMON"
	RarityRare      RarityTier = "RARE"
	RarityEpic      RarityTier = "EPIC"
	RarityLegendary RarityTier = "LEGENDARY"
)

// RarityWeight is one entry of a pack's weight table. Declaration order
// matters: the cumulative distribution is built in table order so tie-breaks
// are deterministic for a fixed seed.
type RarityWeight struct {
	Rarity RarityTier `json:"rarity"`
	Weight int        `json:"weight"`
}

// Pack is a purchasable bundle. A pack version is immutable once any
// completed allocation references it; catalog edits create a new version.
type Pack struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Price       int            `json:"price"`
	WeightTotal int            `json:"weight_total"`
	Active      bool           `json:"active"`
	Version     int            `json:"version"`
	Weights     []RarityWeight `json:"weights"`
	CreatedAt   time.Time      `json:"created_at"`
}
