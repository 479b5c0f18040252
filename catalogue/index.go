package catalogue

import "github.com/defistate/arb-engine/arb"

// Index provides O(1) by-ID access over a pool snapshot, grounded on the
// teacher's IndexableUniswapV2System: a byID map plus a defensive-copy All().
type Index struct {
	byID map[arb.PoolID]Pool
	all  []Pool
}

// NewIndex builds an Index from a flat slice of pools.
func NewIndex(pools []Pool) *Index {
	byID := make(map[arb.PoolID]Pool, len(pools))
	for _, p := range pools {
		byID[p.ID] = p
	}
	return &Index{byID: byID, all: pools}
}

// GetByID retrieves a pool by its PoolID.
func (idx *Index) GetByID(id arb.PoolID) (Pool, bool) {
	p, ok := idx.byID[id]
	return p, ok
}

// All returns a defensive copy of every indexed pool.
func (idx *Index) All() []Pool {
	out := make([]Pool, len(idx.all))
	copy(out, idx.all)
	return out
}
