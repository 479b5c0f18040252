package catalogue

import "github.com/defistate/arb-engine/arb"

// Diff is the set of changes between two pool snapshots, grounded on the
// teacher's UniswapV2SystemDiff: additions, reserve-changed updates, and
// deletions, computed via two map passes over the old and new state.
type Diff struct {
	Additions []Pool
	Updates   []Pool
	Deletions []arb.PoolID
}

// IsEmpty reports whether the diff contains no changes.
func (d Diff) IsEmpty() bool {
	return len(d.Additions) == 0 && len(d.Updates) == 0 && len(d.Deletions) == 0
}

// ComputeDiff computes the diff turning old into new, comparing reserves
// with uint256.Int.Eq rather than reflect.DeepEqual.
func ComputeDiff(old, new []Pool) Diff {
	oldByID := make(map[arb.PoolID]Pool, len(old))
	for _, p := range old {
		oldByID[p.ID] = p
	}

	newByID := make(map[arb.PoolID]Pool, len(new))
	for _, p := range new {
		newByID[p.ID] = p
	}

	var diff Diff

	for id, newPool := range newByID {
		oldPool, exists := oldByID[id]
		if !exists {
			diff.Additions = append(diff.Additions, newPool)
			continue
		}
		if !reservesEqual(oldPool, newPool) {
			diff.Updates = append(diff.Updates, newPool)
		}
	}

	for id := range oldByID {
		if _, exists := newByID[id]; !exists {
			diff.Deletions = append(diff.Deletions, id)
		}
	}

	return diff
}

func reservesEqual(a, b Pool) bool {
	if a.HasReserves() != b.HasReserves() {
		return false
	}
	if !a.HasReserves() {
		return true
	}
	return a.Reserve0.Eq(b.Reserve0) && a.Reserve1.Eq(b.Reserve1)
}
