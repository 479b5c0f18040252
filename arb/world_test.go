package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorldNoArbitrage(t *testing.T) {
	w := NewWorld([]Pool{poolFrom("F1", "A", "B", 100, 200)})

	require.Equal(t, 2, len(w.TokenVec))
	assert.Equal(t, NewToken(tokenFrom("A")), w.TokenVec[0])
	assert.Equal(t, NewToken(tokenFrom("B")), w.TokenVec[1])

	assert.Equal(t, 0, w.TokenMap[tokenFrom("A")])
	assert.Equal(t, 1, w.TokenMap[tokenFrom("B")])

	require.Len(t, w.SwapVec, 2)
	assert.True(t, w.SwapVec[0].Equal(swapFrom("F1", "A", "B", 100, 200)))
	assert.True(t, w.SwapVec[1].Equal(Reverse(poolFrom("F1", "A", "B", 100, 200))))

	assert.Equal(t, [][]SwapIndex{{0}, {1}}, w.Graph)
}

func TestNewWorldWithArbitrage(t *testing.T) {
	w := NewWorld([]Pool{
		poolFrom("F1", "A", "B", 100, 200),
		poolFrom("F2", "B", "C", 200, 300),
		poolFrom("F3", "A", "C", 120, 300),
	})

	require.Len(t, w.TokenVec, 3)
	assert.Equal(t, NewToken(tokenFrom("A")), w.TokenVec[0])
	assert.Equal(t, NewToken(tokenFrom("B")), w.TokenVec[1])
	assert.Equal(t, NewToken(tokenFrom("C")), w.TokenVec[2])

	require.Len(t, w.SwapVec, 6)

	// Token A (0) has swaps A->B and A->C; token B (1) has B->A and B->C;
	// token C (2) has C->A and C->B.
	assert.Len(t, w.Graph[0], 2)
	assert.Len(t, w.Graph[1], 2)
	assert.Len(t, w.Graph[2], 2)
}

func TestNewWorldCycleDiscovery(t *testing.T) {
	w := NewWorld([]Pool{
		poolFrom("F1", "A", "B", 100, 200),
		poolFrom("F2", "A", "B", 300, 100),
	})

	assert.Equal(t, NewToken(tokenFrom("A")), w.TokenVec[0])
	assert.Equal(t, NewToken(tokenFrom("B")), w.TokenVec[1])
	assert.Equal(t, [][]SwapIndex{{0, 1}, {2, 3}}, w.Graph)
}

func TestWorldFindCycles(t *testing.T) {
	w := NewWorld([]Pool{
		poolFrom("F1", "A", "B", 100, 200),
		poolFrom("F2", "A", "B", 100, 300),
	})

	// The B->A edges are the OneForZero sides of the (A, B) pools.
	f1 := poolFrom("F1", "A", "B", 100, 200)
	f2 := poolFrom("F2", "A", "B", 100, 300)
	want := []Cycle{
		MustNewCycle([]Swap{Forward(f1), Reverse(f2)}),
		MustNewCycle([]Swap{Forward(f2), Reverse(f1)}),
	}

	require.Len(t, w.CycleVec, len(want))
	for i := range want {
		found := false
		for _, got := range w.CycleVec {
			if got.Equal(want[i]) {
				found = true
				break
			}
		}
		assert.True(t, found, "expected cycle %d not found in world.CycleVec", i)
	}
}

func TestWorldUpdateSwaps(t *testing.T) {
	w := NewWorld([]Pool{poolFrom("F1", "A", "B", 100, 200)})

	update := w.Update([]Pool{poolFrom("F1", "A", "B", 100, 300)})
	_ = update

	require.Len(t, w.SwapVec, 2)
	assert.True(t, w.SwapVec[0].Equal(swapFrom("F1", "A", "B", 100, 300)))
	assert.Equal(t, uint64(300), w.SwapVec[0].ReserveOut().Uint64())
}
