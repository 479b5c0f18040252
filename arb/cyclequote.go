package arb

import (
	"math/big"

	"github.com/holiman/uint256"
)

// CycleQuote is the result of pricing a fixed amountIn through every swap of
// a Cycle in sequence, carrying the resulting profit (output minus input,
// signed — see SPEC_FULL.md §3 for why this is *big.Int rather than a
// native I256).
type CycleQuote struct {
	quotes []SwapQuote
}

// newCycleQuote threads amountIn through cycle's swaps, each swap's output
// feeding the next swap's input.
func newCycleQuote(cycle Cycle, amountIn *uint256.Int) CycleQuote {
	quotes := make([]SwapQuote, 0, len(cycle.Swaps))
	amount := amountIn
	for _, s := range cycle.Swaps {
		q := NewSwapQuote(s, amount)
		quotes = append(quotes, q)
		amount = q.AmountOut
	}
	return CycleQuote{quotes: quotes}
}

// SwapQuotes returns the per-swap quotes making up this cycle quote, in
// cycle order.
func (q CycleQuote) SwapQuotes() []SwapQuote {
	return q.quotes
}

// AmountIn is the amount fed into the cycle's first swap.
func (q CycleQuote) AmountIn() *uint256.Int {
	return q.quotes[0].AmountIn
}

// AmountOut is the amount produced by the cycle's last swap.
func (q CycleQuote) AmountOut() *uint256.Int {
	return q.quotes[len(q.quotes)-1].AmountOut
}

// Profit is AmountOut - AmountIn, signed.
func (q CycleQuote) Profit() *big.Int {
	return new(big.Int).Sub(q.AmountOut().ToBig(), q.AmountIn().ToBig())
}

// ProfitMargin is profit in basis points of amountIn (10_000 = 100%),
// signed, saturating at (+/-) math.MaxInt32 for pathological ratios.
func (q CycleQuote) ProfitMargin() int32 {
	profit := q.Profit()
	amountIn := q.AmountIn()
	if amountIn.IsZero() {
		return 0
	}

	scaledProfit := new(big.Int).Abs(profit)
	scaledProfit.Mul(scaledProfit, big.NewInt(10_000))
	margin := new(big.Int).Div(scaledProfit, amountIn.ToBig())

	const maxInt32 = int32(1<<31 - 1)
	var result int32
	if margin.Cmp(big.NewInt(int64(maxInt32))) > 0 {
		result = maxInt32
	} else {
		result = int32(margin.Int64())
	}

	if profit.Sign() < 0 {
		return -result
	}
	return result
}

// IsProfitable reports whether this quote has strictly positive profit.
func (q CycleQuote) IsProfitable() bool {
	return q.Profit().Sign() > 0
}
