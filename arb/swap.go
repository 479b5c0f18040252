package arb

import (
	"fmt"
	"math"
	"math/big"

	"github.com/holiman/uint256"
)

// Direction is which side of a pool a Swap traverses.
type Direction uint8

const (
	// ZeroForOne swaps token0 in for token1 out.
	ZeroForOne Direction = iota
	// OneForZero swaps token1 in for token0 out.
	OneForZero
)

// IsOpposite reports whether d and other are the two directions of the same pool.
func (d Direction) IsOpposite(other Direction) bool {
	return (d == OneForZero && other == ZeroForOne) || (d == ZeroForOne && other == OneForZero)
}

// String renders the direction the way the engine logs it: "0>1" / "1>0".
func (d Direction) String() string {
	if d == ZeroForOne {
		return "0>1"
	}
	return "1>0"
}

// SwapID identifies one directed side of a pool.
type SwapID struct {
	PoolID    PoolID
	Direction Direction
}

// String renders "<pool> <dir>".
func (id SwapID) String() string {
	return fmt.Sprintf("%s %s", id.PoolID, id.Direction)
}

// feeNumerator/feeDenominator express the 0.3% Uniswap-v2 swap fee:
// a trade of size x nets x*997/1000 of tradeable input.
const (
	feeNumerator   = 997
	feeDenominator = 1000
)

// logRateScale is the fixed-point scale applied to the log10 rate so it can
// be carried and summed as an int64 instead of a float64.
const logRateScale = 1_000_000.0

// logRateFeeFactor is log10(997/1000), folded once into every swap's rate so
// cycle profitability can be sign-checked by summing log rates instead of
// multiplying raw rates.
var logRateFeeFactor = math.Log10(float64(feeNumerator) / float64(feeDenominator))

// Swap is one directed side of a Pool: a potential trade from TokenIn to
// TokenOut through PoolID's reserves. It does not carry a trade amount;
// see SwapQuote for that.
//
// Reserves are optional (both nil or both set) exactly like Pool: a Swap
// constructed from a pool with unknown reserves cannot be quoted or given
// a log rate until reserves arrive.
type Swap struct {
	ID       SwapID
	TokenIn  TokenID
	TokenOut TokenID

	reserveIn  *uint256.Int
	reserveOut *uint256.Int
	logRate    int64
	hasRate    bool
}

// NewSwap constructs a Swap, computing its log rate from reserves when both
// are present. TokenIn and TokenOut must differ.
func NewSwap(id SwapID, tokenIn, tokenOut TokenID, reserveIn, reserveOut *uint256.Int) (Swap, error) {
	if tokenIn == tokenOut {
		return Swap{}, ErrTokenMismatch
	}
	s := Swap{ID: id, TokenIn: tokenIn, TokenOut: tokenOut, reserveIn: reserveIn, reserveOut: reserveOut}
	if reserveIn != nil && reserveOut != nil {
		s.logRate = calculateLogRate(reserveIn, reserveOut)
		s.hasRate = true
	}
	return s, nil
}

// Forward builds the token0->token1 swap side of a pool.
func Forward(p Pool) Swap {
	s, err := NewSwap(SwapID{PoolID: p.ID, Direction: ZeroForOne}, p.Token0, p.Token1, p.Reserve0, p.Reserve1)
	if err != nil {
		// Pool.Token0 == Pool.Token1 is a malformed pool. The ingestion
		// decoder rejects such updates; catalogue pools are not checked
		// before they reach this point.
		panic(fmt.Sprintf("arb: malformed pool %s: %v", p.ID, err))
	}
	return s
}

// Reverse builds the token1->token0 swap side of a pool.
func Reverse(p Pool) Swap {
	s, err := NewSwap(SwapID{PoolID: p.ID, Direction: OneForZero}, p.Token1, p.Token0, p.Reserve1, p.Reserve0)
	if err != nil {
		panic(fmt.Sprintf("arb: malformed pool %s: %v", p.ID, err))
	}
	return s
}

// HasReserves reports whether this swap has known reserves.
func (s Swap) HasReserves() bool {
	return s.reserveIn != nil && s.reserveOut != nil
}

// ReserveIn returns the input-side reserve. Panics if HasReserves is false.
func (s Swap) ReserveIn() *uint256.Int {
	if !s.HasReserves() {
		panic(ErrMissingReserves)
	}
	return s.reserveIn
}

// ReserveOut returns the output-side reserve. Panics if HasReserves is false.
func (s Swap) ReserveOut() *uint256.Int {
	if !s.HasReserves() {
		panic(ErrMissingReserves)
	}
	return s.reserveOut
}

// LogRate returns the fee-adjusted, fixed-point scaled log10 exchange rate
// of this swap. Panics if HasReserves is false.
func (s Swap) LogRate() int64 {
	if !s.hasRate {
		panic(ErrMissingReserves)
	}
	return s.logRate
}

// IsReciprocal reports whether s and other are the two directions of the
// same pool — a trivial, uninteresting 1-hop round trip.
func (s Swap) IsReciprocal(other Swap) bool {
	return s.ID.PoolID == other.ID.PoolID && s.ID.Direction.IsOpposite(other.ID.Direction)
}

// Equal compares swaps the way the engine's cycle dedup does: by
// token_in/token_out/id only. Reserves (and thus log rate) deliberately do
// not participate, so a Swap looked up after a reserve update still matches
// the one recorded in a cached Cycle.
func (s Swap) Equal(other Swap) bool {
	return s.TokenIn == other.TokenIn && s.TokenOut == other.TokenOut && s.ID == other.ID
}

// Less orders swaps by (token_in, token_out, pool_id, direction), giving
// World a deterministic swap ordering independent of ingestion order.
func (s Swap) Less(other Swap) bool {
	if s.TokenIn != other.TokenIn {
		return s.TokenIn.Cmp(other.TokenIn) < 0
	}
	if s.TokenOut != other.TokenOut {
		return s.TokenOut.Cmp(other.TokenOut) < 0
	}
	if s.ID.PoolID != other.ID.PoolID {
		return s.ID.PoolID.Cmp(other.ID.PoolID) < 0
	}
	return s.ID.Direction < other.ID.Direction
}

// EstimatedGasCostInWETH is a rough, fixed advisory gas-cost estimate for
// executing one swap, based on ~150k gas of contract overhead. It is not
// wired into any profitability calculation; a consumer nets it out itself.
const EstimatedGasCostInWETH = 0.0001

// calculateLogRate computes the fee-adjusted log10 rate of reserveOut/reserveIn,
// scaled by logRateScale and truncated toward zero to an int64 — matching a
// float64-to-int64 cast exactly, not rounding.
func calculateLogRate(reserveIn, reserveOut *uint256.Int) int64 {
	rate := (approxLog10(reserveOut) - approxLog10(reserveIn) + logRateFeeFactor) * logRateScale
	return int64(rate)
}

// approxLog10 returns an approximate base-10 logarithm of u, accurate enough
// for rate comparisons. Converts through big.Float rather than computing a
// native uint256 logarithm, since the library does not provide one.
func approxLog10(u *uint256.Int) float64 {
	if u.IsZero() {
		return math.Inf(-1)
	}
	f, _ := new(big.Float).SetInt(u.ToBig()).Float64()
	return math.Log10(f)
}
