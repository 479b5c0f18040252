package arb

import (
	"sort"

	"github.com/defistate/arb-engine/bitset"
)

// TokenIndex and SwapIndex are arena indices into World.TokenVec/SwapVec —
// the flat, index-addressed layout spec.md's Design Notes call for instead
// of a pointer graph.
type TokenIndex = int
type SwapIndex = int

// DefaultMaxCycleDepth is the default bound on how many swaps a cycle may
// chain together before DFS abandons that branch.
const DefaultMaxCycleDepth = 3

// World is the whole known pool graph: every token (vertex), every directed
// swap (edge), an adjacency list from token to outgoing swaps, and every
// cycle discovered within MaxCycleDepth hops. It is rebuilt wholesale on
// construction and patched incrementally by Update.
type World struct {
	TokenVec []Token
	TokenMap map[TokenID]TokenIndex

	SwapVec []Swap
	SwapMap map[SwapID]SwapIndex

	// Graph[tokenIndex] lists the SwapIndex of every swap whose TokenIn is
	// that token — i.e. the outgoing edges of the vertex.
	Graph [][]SwapIndex

	CycleVec []Cycle

	MaxCycleDepth int
}

// NewWorld builds a World from a set of pools, enumerating every cycle up to
// DefaultMaxCycleDepth hops. Call this once at startup; use Update for
// subsequent reserve changes.
func NewWorld(pools []Pool) *World {
	return NewWorldWithDepth(pools, DefaultMaxCycleDepth)
}

// NewWorldWithDepth is NewWorld with an explicit cycle-depth bound.
func NewWorldWithDepth(pools []Pool, maxDepth int) *World {
	w := &World{MaxCycleDepth: maxDepth}
	w.rebuildGraph(pools)
	w.CycleVec = w.findCycles()
	return w
}

func (w *World) rebuildGraph(pools []Pool) {
	tokenSet := make(map[TokenID]struct{})
	for _, p := range pools {
		tokenSet[p.Token0] = struct{}{}
		tokenSet[p.Token1] = struct{}{}
	}

	tokenVec := make([]Token, 0, len(tokenSet))
	for id := range tokenSet {
		tokenVec = append(tokenVec, NewToken(id))
	}
	sort.Slice(tokenVec, func(i, j int) bool { return tokenVec[i].ID.Cmp(tokenVec[j].ID) < 0 })

	tokenMap := make(map[TokenID]TokenIndex, len(tokenVec))
	for i, t := range tokenVec {
		tokenMap[t.ID] = i
	}

	swapVec := make([]Swap, 0, len(pools)*2)
	for _, p := range pools {
		swapVec = append(swapVec, Forward(p))
		swapVec = append(swapVec, Reverse(p))
	}
	sort.Slice(swapVec, func(i, j int) bool { return swapVec[i].Less(swapVec[j]) })

	swapMap := make(map[SwapID]SwapIndex, len(swapVec))
	for i, s := range swapVec {
		swapMap[s.ID] = i
	}

	graph := make([][]SwapIndex, len(tokenVec))
	for i, s := range swapVec {
		tokenIdx := tokenMap[s.TokenIn]
		graph[tokenIdx] = append(graph[tokenIdx], i)
	}

	w.TokenVec = tokenVec
	w.TokenMap = tokenMap
	w.SwapVec = swapVec
	w.SwapMap = swapMap
	w.Graph = graph
}

// findCycles runs a depth-bounded DFS from every token, deduplicating
// discovered cycles by their canonical Key().
func (w *World) findCycles() []Cycle {
	found := make(map[string]Cycle)
	visited := bitset.NewBitSet(uint64(len(w.SwapVec)))
	var path []Swap

	for startIdx := range w.TokenVec {
		visited.Clear()
		path = path[:0]
		w.dfsFindCycles(startIdx, startIdx, visited, path, found, 0)
	}

	cycles := make([]Cycle, 0, len(found))
	for _, c := range found {
		cycles = append(cycles, c)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i].Swaps[0].Less(cycles[j].Swaps[0]) })
	return cycles
}

func (w *World) dfsFindCycles(startToken, currentToken TokenIndex, visited bitset.BitSet, path []Swap, found map[string]Cycle, depth int) {
	if depth > 0 && currentToken == startToken {
		if c, err := NewCycle(append([]Swap(nil), path...)); err == nil {
			found[c.Key()] = c
		}
		return
	}
	if depth >= w.MaxCycleDepth {
		return
	}

	for _, swapIdx := range w.Graph[currentToken] {
		if visited.IsSet(uint64(swapIdx)) {
			continue
		}
		s := w.SwapVec[swapIdx]
		if s.TokenIn != w.TokenVec[currentToken].ID {
			continue
		}
		nextToken, ok := w.TokenMap[s.TokenOut]
		if !ok {
			continue
		}

		visited.Set(uint64(swapIdx))
		path = append(path, s)

		w.dfsFindCycles(startToken, nextToken, visited, path, found, depth+1)

		path = path[:len(path)-1]
		visited.Unset(uint64(swapIdx))
	}
}

// Update applies new pool reserves, updating the corresponding swaps in
// place and returning the cycles that contain at least one updated swap.
func (w *World) Update(pools []Pool) *WorldUpdate {
	updatedSwaps := w.updateSwaps(pools)
	return NewWorldUpdate(w.updateCycles(updatedSwaps))
}

func (w *World) updateSwaps(pools []Pool) []Swap {
	updated := make([]Swap, 0, len(pools)*2)

	for _, p := range pools {
		forward := Forward(p)
		if idx, ok := w.SwapMap[forward.ID]; ok {
			w.SwapVec[idx] = forward
			updated = append(updated, forward)
		}

		reverse := Reverse(p)
		if idx, ok := w.SwapMap[reverse.ID]; ok {
			w.SwapVec[idx] = reverse
			updated = append(updated, reverse)
		}
	}

	return updated
}

// updateCycles finds every cycle touched by the just-updated swaps,
// rebuilds each one from the current swap table so its Swaps (and thus its
// log rate and memoized best quote) reflect the new reserves, and returns
// the rebuilt cycles. Rebuilt cycles replace their stale counterparts in
// w.CycleVec so later updates see fresh state too.
func (w *World) updateCycles(updatedSwaps []Swap) []Cycle {
	updatedSet := make(map[SwapID]struct{}, len(updatedSwaps))
	for _, s := range updatedSwaps {
		updatedSet[s.ID] = struct{}{}
	}

	var touched []Cycle
	for i, c := range w.CycleVec {
		affected := false
		for _, s := range c.Swaps {
			if _, ok := updatedSet[s.ID]; ok {
				affected = true
				break
			}
		}
		if !affected {
			continue
		}

		refreshed := make([]Swap, len(c.Swaps))
		for j, s := range c.Swaps {
			if idx, ok := w.SwapMap[s.ID]; ok {
				refreshed[j] = w.SwapVec[idx]
			} else {
				refreshed[j] = s
			}
		}
		rebuilt := Cycle{Swaps: refreshed}
		w.CycleVec[i] = rebuilt
		touched = append(touched, rebuilt)
	}
	return touched
}
