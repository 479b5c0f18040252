package catalogue

import (
	"testing"

	"github.com/defistate/arb-engine/arb"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolID(label string) arb.PoolID {
	return arb.PoolID(common.BytesToAddress([]byte(label)))
}

func tokenID(label string) arb.TokenID {
	return arb.TokenID(common.BytesToAddress([]byte(label)))
}

func reservedPool(label, t0, t1 string, r0, r1 uint64) Pool {
	return Pool{
		ID: poolID(label), Token0ID: tokenID(t0), Token1ID: tokenID(t1),
		Reserve0: uint256.NewInt(r0), Reserve1: uint256.NewInt(r1),
	}
}

func TestIndexGetByID(t *testing.T) {
	p1 := reservedPool("P1", "A", "B", 100, 200)
	idx := NewIndex([]Pool{p1})

	got, ok := idx.GetByID(poolID("P1"))
	require.True(t, ok)
	assert.Equal(t, p1, got)

	_, ok = idx.GetByID(poolID("P2"))
	assert.False(t, ok)
}

func TestIndexAllIsDefensiveCopy(t *testing.T) {
	idx := NewIndex([]Pool{reservedPool("P1", "A", "B", 100, 200)})
	all := idx.All()
	all[0].ID = poolID("MUTATED")

	again := idx.All()
	assert.Equal(t, poolID("P1"), again[0].ID)
}

func TestComputeDiffAdditionsUpdatesDeletions(t *testing.T) {
	old := []Pool{reservedPool("P1", "A", "B", 100, 200), reservedPool("P2", "B", "C", 10, 20)}
	newState := []Pool{reservedPool("P1", "A", "B", 150, 200), reservedPool("P3", "C", "A", 1, 1)}

	diff := ComputeDiff(old, newState)
	require.Len(t, diff.Updates, 1)
	assert.Equal(t, poolID("P1"), diff.Updates[0].ID)
	require.Len(t, diff.Additions, 1)
	assert.Equal(t, poolID("P3"), diff.Additions[0].ID)
	require.Len(t, diff.Deletions, 1)
	assert.Equal(t, poolID("P2"), diff.Deletions[0])
}

func TestComputeDiffEmpty(t *testing.T) {
	state := []Pool{reservedPool("P1", "A", "B", 100, 200)}
	diff := ComputeDiff(state, state)
	assert.True(t, diff.IsEmpty())
}

func TestApplyPatchDoesNotAliasPrevState(t *testing.T) {
	prev := []Pool{reservedPool("P1", "A", "B", 100, 200)}
	diff := ComputeDiff(prev, []Pool{reservedPool("P1", "A", "B", 150, 200)})

	patched := ApplyPatch(prev, diff)
	require.Len(t, patched, 1)
	assert.Equal(t, uint64(150), patched[0].Reserve0.Uint64())
	assert.Equal(t, uint64(100), prev[0].Reserve0.Uint64(), "previous snapshot must be unaffected")
}

func TestApplyPatchAdditionsAndDeletions(t *testing.T) {
	prev := []Pool{reservedPool("P1", "A", "B", 100, 200), reservedPool("P2", "B", "C", 10, 20)}
	diff := Diff{
		Additions: []Pool{reservedPool("P3", "C", "A", 1, 1)},
		Deletions: []arb.PoolID{poolID("P2")},
	}

	patched := ApplyPatch(prev, diff)
	byID := NewIndex(patched)

	_, ok := byID.GetByID(poolID("P2"))
	assert.False(t, ok)
	_, ok = byID.GetByID(poolID("P3"))
	assert.True(t, ok)
	_, ok = byID.GetByID(poolID("P1"))
	assert.True(t, ok)
}
