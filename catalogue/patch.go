package catalogue

import (
	"github.com/defistate/arb-engine/arb"
	"github.com/holiman/uint256"
)

// deepCopyPool returns a Pool whose reserve pointers own their own memory,
// so the patched state never aliases the previous state's reserves.
func deepCopyPool(p Pool) Pool {
	out := p
	if p.Reserve0 != nil {
		out.Reserve0 = new(uint256.Int).Set(p.Reserve0)
	}
	if p.Reserve1 != nil {
		out.Reserve1 = new(uint256.Int).Set(p.Reserve1)
	}
	return out
}

// ApplyPatch applies diff to prevState and returns the resulting snapshot,
// grounded on the teacher's Patcher: map-based apply with deep-copied
// reserves so the new state never shares memory with the old.
func ApplyPatch(prevState []Pool, diff Diff) []Pool {
	byID := make(map[arb.PoolID]Pool, len(prevState))
	for _, p := range prevState {
		byID[p.ID] = deepCopyPool(p)
	}

	for _, id := range diff.Deletions {
		delete(byID, id)
	}
	for _, p := range diff.Updates {
		byID[p.ID] = deepCopyPool(p)
	}
	for _, p := range diff.Additions {
		byID[p.ID] = deepCopyPool(p)
	}

	out := make([]Pool, 0, len(byID))
	for _, p := range byID {
		out = append(out, p)
	}
	return out
}
