package arb

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// tokenFrom derives a deterministic, distinct TokenID from a short label —
// the Go analogue of original_source's address_from_str test helper, which
// pads a short symbol into a valid address.
func tokenFrom(label string) TokenID {
	return TokenID(common.BytesToAddress([]byte(label)))
}

func poolFrom(poolLabel, token0, token1 string, reserve0, reserve1 uint64) Pool {
	return NewReservedPool(
		PoolID(common.BytesToAddress([]byte(poolLabel))),
		tokenFrom(token0),
		tokenFrom(token1),
		uint256.NewInt(reserve0),
		uint256.NewInt(reserve1),
	)
}

func barePoolFrom(poolLabel, token0, token1 string) Pool {
	return NewPool(PoolID(common.BytesToAddress([]byte(poolLabel))), tokenFrom(token0), tokenFrom(token1))
}

// swapFrom mirrors original_source's test_helpers::swap: builds the
// ZeroForOne side of a pool with the given token0/token1 reserves.
func swapFrom(poolLabel, token0, token1 string, reserve0, reserve1 uint64) Swap {
	return Forward(poolFrom(poolLabel, token0, token1, reserve0, reserve1))
}

// bareSwapFrom builds a reserve-less ZeroForOne swap.
func bareSwapFrom(poolLabel, token0, token1 string) Swap {
	return Forward(barePoolFrom(poolLabel, token0, token1))
}

// cycleFrom mirrors original_source's test_helpers::cycle: a sequence of
// ZeroForOne swaps chained token0->token1 around a loop.
func cycleFrom(rows [][5]any) Cycle {
	swaps := make([]Swap, 0, len(rows))
	for _, r := range rows {
		poolLabel := r[0].(string)
		token0 := r[1].(string)
		token1 := r[2].(string)
		reserve0 := uint64(r[3].(int))
		reserve1 := uint64(r[4].(int))
		swaps = append(swaps, swapFrom(poolLabel, token0, token1, reserve0, reserve1))
	}
	return MustNewCycle(swaps)
}

func u256(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}
