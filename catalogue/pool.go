// Package catalogue is the persistence-boundary snapshot of pools: the
// on-the-wire/at-rest representation a bootstrap service or a reserve-update
// feed hands to the arbitrage engine, rebased onto arb's address-keyed
// identifiers and 256-bit reserves.
package catalogue

import (
	"github.com/defistate/arb-engine/arb"
	"github.com/holiman/uint256"
)

// Pool is a pool as it arrives from a persisted snapshot or an RPC-batch
// bootstrap, before it is indexed or turned into an arb.Pool.
type Pool struct {
	ID       arb.PoolID
	Token0ID arb.TokenID
	Token1ID arb.TokenID
	Reserve0 *uint256.Int
	Reserve1 *uint256.Int
}

// HasReserves reports whether both reserves are known.
func (p Pool) HasReserves() bool {
	return p.Reserve0 != nil && p.Reserve1 != nil
}

// ToArb converts p into the arb package's own Pool representation.
func (p Pool) ToArb() arb.Pool {
	if !p.HasReserves() {
		return arb.NewPool(p.ID, p.Token0ID, p.Token1ID)
	}
	return arb.NewReservedPool(p.ID, p.Token0ID, p.Token1ID, p.Reserve0, p.Reserve1)
}

// ToArbPools converts a slice of catalogue pools into arb pools, the shape
// arb.NewWorld and World.Update expect.
func ToArbPools(pools []Pool) []arb.Pool {
	out := make([]arb.Pool, len(pools))
	for i, p := range pools {
		out[i] = p.ToArb()
	}
	return out
}
