package arb

import (
	"sync"

	"github.com/holiman/uint256"
)

// SwapQuote is the result of trading AmountIn of Swap.TokenIn into
// Swap.TokenOut at the swap's current reserves.
type SwapQuote struct {
	Swap      Swap
	AmountIn  *uint256.Int
	AmountOut *uint256.Int
}

// scratch holds reusable uint256.Int scratch space for GetAmountOut, the
// same allocation-avoidance shape as the teacher's Calculator/sync.Pool,
// generalized to a fixed-width value type that needs no New() backing.
type scratch struct {
	amountInWithFee *uint256.Int
	numerator       *uint256.Int
	denominator     *uint256.Int
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{
			amountInWithFee: new(uint256.Int),
			numerator:       new(uint256.Int),
			denominator:     new(uint256.Int),
		}
	},
}

// NewSwapQuote quotes amountIn through swap's current reserves. Panics if
// swap has no reserves; callers check Swap.HasReserves (or go through
// Cycle/CycleQuote, which only quote cycles whose swaps are all reserved).
func NewSwapQuote(swap Swap, amountIn *uint256.Int) SwapQuote {
	amountOut := GetAmountOut(swap.ReserveIn(), swap.ReserveOut(), amountIn)
	return SwapQuote{Swap: swap, AmountIn: amountIn, AmountOut: amountOut}
}

// GetAmountOut applies the constant-product formula with the 0.3% fee:
// amountOut = floor(amountIn*997*reserveOut / (reserveIn*1000 + amountIn*997)).
//
// Every multiplication is overflow-checked: within the bisection optimizer's
// domain (amountIn <= reserveIn) this never overflows for realistic
// reserves, but a caller outside that domain gets a saturated max-uint256
// result rather than silent wraparound.
func GetAmountOut(reserveIn, reserveOut, amountIn *uint256.Int) *uint256.Int {
	s := scratchPool.Get().(*scratch)
	defer scratchPool.Put(s)

	if _, overflow := s.amountInWithFee.MulOverflow(amountIn, uint256.NewInt(feeNumerator)); overflow {
		return saturated()
	}
	if _, overflow := s.numerator.MulOverflow(s.amountInWithFee, reserveOut); overflow {
		return saturated()
	}
	if _, overflow := s.denominator.MulOverflow(reserveIn, uint256.NewInt(feeDenominator)); overflow {
		return saturated()
	}
	if _, overflow := s.denominator.AddOverflow(s.denominator, s.amountInWithFee); overflow {
		return saturated()
	}

	if s.denominator.IsZero() {
		return new(uint256.Int)
	}
	return new(uint256.Int).Div(s.numerator, s.denominator)
}

// saturated returns the maximum representable uint256 value (all bits set).
func saturated() *uint256.Int {
	return new(uint256.Int).Not(new(uint256.Int))
}
