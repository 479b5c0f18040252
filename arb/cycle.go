package arb

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Cycle is a sequence of Swaps whose output token feeds the next swap's
// input token, and whose last swap's output token equals the first swap's
// input token. It is canonicalized on construction by rotating to its
// lexicographically-smallest swap, so two cycles made of the same swaps in
// the same rotational order compare and hash equal regardless of which swap
// started them.
type Cycle struct {
	Swaps []Swap

	best    CycleQuote
	hasBest bool
}

// NewCycle validates and canonicalizes swaps into a Cycle.
//
// Validation order matches the engine's own checks: length, then token
// chaining, then vertex (token) degree, then duplicate edges, then
// reciprocal (same-pool, opposite-direction) edges.
func NewCycle(swaps []Swap) (Cycle, error) {
	if err := validateSwaps(swaps); err != nil {
		return Cycle{}, err
	}
	normalized := normalizeSwaps(swaps)
	return Cycle{Swaps: normalized}, nil
}

// MustNewCycle is NewCycle for callers (tests, internal constructors) that
// already know the input is a valid cycle.
func MustNewCycle(swaps []Swap) Cycle {
	c, err := NewCycle(swaps)
	if err != nil {
		panic(err)
	}
	return c
}

func validateSwaps(swaps []Swap) error {
	if len(swaps) < 2 {
		return ErrCycleTooShort
	}

	for i := range swaps {
		next := (i + 1) % len(swaps)
		if swaps[i].TokenOut != swaps[next].TokenIn {
			return fmt.Errorf("%w: swap %d output token (%s) vs swap %d input token (%s)",
				ErrCycleTokenMismatch, i, swaps[i].TokenOut, next, swaps[next].TokenIn)
		}
	}

	tokenCounts := make(map[TokenID]int, len(swaps)*2)
	for _, s := range swaps {
		tokenCounts[s.TokenIn]++
		tokenCounts[s.TokenOut]++
		if tokenCounts[s.TokenIn] > 2 || tokenCounts[s.TokenOut] > 2 {
			return ErrCycleDuplicateTokens
		}
	}

	seen := make(map[SwapID]bool, len(swaps))
	for _, s := range swaps {
		if seen[s.ID] {
			return ErrCycleDuplicateSwaps
		}
		seen[s.ID] = true
	}

	for i := 0; i < len(swaps); i++ {
		for j := i + 1; j < len(swaps); j++ {
			if swaps[i].IsReciprocal(swaps[j]) {
				return ErrCycleReciprocalSwaps
			}
		}
	}

	return nil
}

// normalizeSwaps rotates swaps so the smallest (by Swap.Less) is first.
func normalizeSwaps(swaps []Swap) []Swap {
	if len(swaps) == 0 {
		return swaps
	}
	minIdx := 0
	for i := 1; i < len(swaps); i++ {
		if swaps[i].Less(swaps[minIdx]) {
			minIdx = i
		}
	}
	if minIdx == 0 {
		return append([]Swap(nil), swaps...)
	}
	rotated := make([]Swap, 0, len(swaps))
	rotated = append(rotated, swaps[minIdx:]...)
	rotated = append(rotated, swaps[:minIdx]...)
	return rotated
}

// Equal compares cycles by their canonicalized swap sequence, using
// Swap.Equal (token_in/token_out/id) for each element — reserves do not
// participate, mirroring the engine's own cycle dedup semantics.
func (c Cycle) Equal(other Cycle) bool {
	if len(c.Swaps) != len(other.Swaps) {
		return false
	}
	for i := range c.Swaps {
		if !c.Swaps[i].Equal(other.Swaps[i]) {
			return false
		}
	}
	return true
}

// Key renders the canonicalized swap-id sequence as a comparable string,
// for use as a map/set key in place of Rust's derived Hash — Go structs
// holding slices of Swap aren't natively map-keyable.
func (c Cycle) Key() string {
	buf := make([]byte, 0, len(c.Swaps)*48)
	for _, s := range c.Swaps {
		buf = append(buf, s.ID.PoolID[:]...)
		buf = append(buf, byte(s.ID.Direction))
	}
	return string(buf)
}

// HasAllReserves reports whether every swap in the cycle has known reserves.
func (c Cycle) HasAllReserves() bool {
	for _, s := range c.Swaps {
		if !s.HasReserves() {
			return false
		}
	}
	return true
}

// SwapsWithNoReserves returns the subset of c.Swaps missing reserves.
func (c Cycle) SwapsWithNoReserves() []Swap {
	var out []Swap
	for _, s := range c.Swaps {
		if !s.HasReserves() {
			out = append(out, s)
		}
	}
	return out
}

// logRate sums each swap's log rate: a cheap, allocation-free sign proxy for
// the cycle's raw (pre-slippage) profitability. Panics if !HasAllReserves.
func (c Cycle) logRate() int64 {
	if !c.HasAllReserves() {
		panic(ErrCycleNotQuotable)
	}
	var sum int64
	for _, s := range c.Swaps {
		sum += s.LogRate()
	}
	return sum
}

// IsPositive reports whether the cycle's summed log rate is positive —
// a necessary, but not sufficient, condition for profitability once
// slippage is taken into account by BestQuote.
func (c Cycle) IsPositive() bool {
	return c.logRate() > 0
}

// Quote prices amountIn through every swap of the cycle in order.
func (c Cycle) Quote(amountIn *uint256.Int) CycleQuote {
	return newCycleQuote(c, amountIn)
}

// optimizerDelta is the probe increment used to sample the profit curve's
// local slope. Too small a delta can make f(x+delta)-f(x) round to zero at
// the 256-bit integer scale and stall the search.
var optimizerDelta = uint256.NewInt(100)

// optimizerPrecision is how close together amountInLeft/amountInRight must
// be before bisection stops.
var optimizerPrecision = uint256.NewInt(1)

// maxOptimizerIterations bounds the bisection loop; the arbitrary limit
// exists only to turn a non-convergent search into an error instead of a
// livelock.
const maxOptimizerIterations = 100

// BestQuote finds the amountIn maximizing profit via bisection on the sign
// of the profit curve's discrete derivative, memoizing the result on first
// call. Returns ErrOptimizationDidNotConverge if the search exceeds
// maxOptimizerIterations; the core is single-owner and non-concurrent (see
// spec.md §5), so a bare unguarded cache flag is sufficient.
func (c *Cycle) BestQuote() (CycleQuote, error) {
	if c.hasBest {
		return c.best, nil
	}

	amountInLeft := new(uint256.Int)
	amountInRight := new(uint256.Int).Set(c.Swaps[0].ReserveIn())
	best := newCycleQuote(*c, new(uint256.Int))

	iterations := 0
	for {
		diff := new(uint256.Int).Sub(amountInRight, amountInLeft)
		if diff.Cmp(optimizerPrecision) <= 0 {
			break
		}
		iterations++
		if iterations > maxOptimizerIterations {
			return CycleQuote{}, fmt.Errorf("%w after %d iterations", ErrOptimizationDidNotConverge, iterations)
		}

		amountIn := new(uint256.Int).Add(amountInLeft, amountInRight)
		amountIn.Div(amountIn, uint256.NewInt(2))
		amountInDelta := new(uint256.Int).Add(amountIn, optimizerDelta)

		quote := newCycleQuote(*c, amountIn)
		quoteDelta := newCycleQuote(*c, amountInDelta)

		if quoteDelta.Profit().Cmp(quote.Profit()) > 0 {
			best = quoteDelta
			amountInLeft = amountIn
		} else {
			best = quote
			amountInRight = amountIn
		}
	}

	if best.AmountIn().Cmp(optimizerPrecision) == 0 {
		best = newCycleQuote(*c, new(uint256.Int))
	}

	c.best = best
	c.hasBest = true
	return best, nil
}
