package arb

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// PoolID uniquely identifies a pool. It is presently just an address; a
// chain id may be folded in once this module talks to more than one chain.
type PoolID common.Address

// ParsePoolID parses a checksummed hex address into a PoolID.
func ParsePoolID(s string) (PoolID, error) {
	addr, err := common.NewMixedcaseAddressFromString(s)
	if err != nil {
		return PoolID{}, fmt.Errorf("invalid pool address %q: %w", s, err)
	}
	if !addr.ValidChecksum() {
		return PoolID{}, fmt.Errorf("invalid pool address checksum: %q", s)
	}
	return PoolID(addr.Address()), nil
}

// String renders the pool address in its standard checksummed hex form.
func (p PoolID) String() string {
	return common.Address(p).String()
}

// Cmp orders PoolIDs by their raw bytes.
func (p PoolID) Cmp(other PoolID) int {
	return bytes.Compare(p[:], other[:])
}

// Pool is a constant-product pool as it arrives from ingestion or a
// catalogue snapshot. Reserve0/Reserve1 are both nil or both set: a pool
// with unknown reserves (just discovered, not yet synced) carries nil for
// both rather than a zero value, since zero reserves are a valid (if
// degenerate) on-chain state.
type Pool struct {
	ID       PoolID
	Token0   TokenID
	Token1   TokenID
	Reserve0 *uint256.Int
	Reserve1 *uint256.Int
}

// NewPool constructs a bare pool with no known reserves.
func NewPool(id PoolID, token0, token1 TokenID) Pool {
	return Pool{ID: id, Token0: token0, Token1: token1}
}

// NewReservedPool constructs a pool with known reserves.
func NewReservedPool(id PoolID, token0, token1 TokenID, reserve0, reserve1 *uint256.Int) Pool {
	return Pool{ID: id, Token0: token0, Token1: token1, Reserve0: reserve0, Reserve1: reserve1}
}

// HasReserves reports whether both reserves are known.
func (p Pool) HasReserves() bool {
	return p.Reserve0 != nil && p.Reserve1 != nil
}
