package domain

// ScarcityPolicy governs how many total instances of an item may ever be
// granted.
type ScarcityPolicy string

const (
	// ScarcityUnlimited items have no supply cap and no serial numbers.
	ScarcityUnlimited ScarcityPolicy = "unlimited"
	// ScarcityLimited items are capped at MaxCount mints, serials 1..MaxCount.
	ScarcityLimited ScarcityPolicy = "limited"
	// ScarcityUnique items exist exactly once, serial 1.
	ScarcityUnique ScarcityPolicy = "unique"
)

// ItemDefinition is a catalog entry. The engine treats it as read-only
// except for MintCount, which only the scarcity ledger may advance.
type ItemDefinition struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Rarity       RarityTier     `json:"rarity"`
	Policy       ScarcityPolicy `json:"policy"`
	MaxCount     int            `json:"max_count,omitempty"` // 0 for unlimited
	MintCount    int            `json:"mint_count"`
	CollectionID string         `json:"collection_id"`
	Active       bool           `json:"active"`
}

// Capped reports whether the item carries serial numbers.
func (d ItemDefinition) Capped() bool {
	return d.Policy == ScarcityLimited || d.Policy == ScarcityUnique
}

// SupplyCap returns the total number of instances that may ever exist,
// or -1 for unlimited items.
func (d ItemDefinition) SupplyCap() int {
	switch d.Policy {
	case ScarcityUnique:
		return 1
	case ScarcityLimited:
		return d.MaxCount
	default:
		return -1
	}
}

// Remaining returns the remaining mintable supply, or -1 for unlimited items.
func (d ItemDefinition) Remaining() int {
	total := d.SupplyCap()
	if total < 0 {
		return -1
	}
	if d.MintCount >= total {
		return 0
	}
	return total - d.MintCount
}

// Exhausted reports whether no further instances can be minted.
func (d ItemDefinition) Exhausted() bool {
	return d.Remaining() == 0
}
