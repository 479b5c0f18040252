// Package arb is the arbitrage cycle engine: tokens, pools, directed swap
// sides, cycles, and the world that ties them together into a graph kept
// current by reserve updates.
package arb

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// TokenID is the address of an ERC20-style token. Two TokenIDs are equal
// iff their underlying bytes are equal.
type TokenID common.Address

// ParseTokenID parses a checksummed hex address into a TokenID.
func ParseTokenID(s string) (TokenID, error) {
	addr, err := common.NewMixedcaseAddressFromString(s)
	if err != nil {
		return TokenID{}, fmt.Errorf("invalid token address %q: %w", s, err)
	}
	if !addr.ValidChecksum() {
		return TokenID{}, fmt.Errorf("invalid token address checksum: %q", s)
	}
	return TokenID(addr.Address()), nil
}

// String renders the token address in its standard checksummed hex form.
func (t TokenID) String() string {
	return common.Address(t).String()
}

// Cmp orders TokenIDs by their raw bytes, giving a deterministic total
// order independent of any registry.
func (t TokenID) Cmp(other TokenID) int {
	return bytes.Compare(t[:], other[:])
}

// Token is a vertex in the swap graph. It carries no data beyond its
// identity; reserves live on Pool and Swap, not on Token.
type Token struct {
	ID TokenID
}

// NewToken wraps a TokenID as a Token vertex.
func NewToken(id TokenID) Token {
	return Token{ID: id}
}
