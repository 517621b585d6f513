package catalog

import (
	"math"
	"sort"

	"github.com/mintforge/packvault/internal/domain"
)

// Candidate is an obtainable item annotated with its availability score.
// The score ranks candidates by remaining scarcity headroom so the final
// random pick among equally-eligible items is uniform and auditable; it is
// not a probability.
type Candidate struct {
	Item  domain.ItemDefinition `json:"item"`
	Score int                   `json:"score"`
}

// resolveCandidates applies the availability policy:
//  1. start from active items matching the rolled rarity
//  2. exclude exhausted unique/limited items
//  3. if empty, widen to the full eligible catalog under the same exclusion
//     rule; a pack must never fail solely because one tier is exhausted
//     while others remain
//  4. if still empty, fail with ErrNoItemsAvailable
//
// Output ordering is deterministic for a given catalog snapshot: score
// descending, ties in declaration order. The widened flag tells the caller
// whether step 3 fired.
func resolveCandidates(items []domain.ItemDefinition, tier domain.RarityTier) (cands []Candidate, widened bool, err error) {
	cands = eligible(items, tier)
	if len(cands) == 0 {
		cands = eligible(items, "")
		widened = true
	}
	if len(cands) == 0 {
		return nil, widened, domain.ErrNoItemsAvailable
	}

	// Stable sort keeps declaration order within equal scores.
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	return cands, widened, nil
}

// eligible filters to obtainable items. An empty tier matches every rarity.
func eligible(items []domain.ItemDefinition, tier domain.RarityTier) []Candidate {
	var out []Candidate
	for _, item := range items {
		if !item.Active {
			continue
		}
		if tier != "" && item.Rarity != tier {
			continue
		}
		if item.Exhausted() {
			continue
		}
		out = append(out, Candidate{Item: item, Score: score(item)})
	}
	return out
}

// score ranks by remaining headroom: unlimited beats any cap, larger
// remaining capacity beats smaller.
func score(item domain.ItemDefinition) int {
	remaining := item.Remaining()
	if remaining < 0 {
		return math.MaxInt
	}
	return remaining
}

// TopBand returns the leading run of candidates sharing the highest score.
// The allocation engine draws uniformly within this band.
func TopBand(cands []Candidate) []Candidate {
	if len(cands) == 0 {
		return nil
	}
	top := cands[0].Score
	end := 1
	for end < len(cands) && cands[end].Score == top {
		end++
	}
	return cands[:end]
}
