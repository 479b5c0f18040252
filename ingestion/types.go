// Package ingestion defines the boundary between an external reserve feed
// and the arbitrage engine: a minimal consumer contract plus a concrete
// JSON-RPC subscriber that implements it.
package ingestion

import (
	"github.com/defistate/arb-engine/arb"
	"github.com/holiman/uint256"
)

// ReserveUpdate carries a single pool's reserves as observed at Timestamp.
// Reserve0/Reserve1 are nil when the source reports the pool's identity
// without yet knowing its reserves (e.g. a newly-created pair).
type ReserveUpdate struct {
	PoolID    arb.PoolID
	Token0ID  arb.TokenID
	Token1ID  arb.TokenID
	Reserve0  *uint256.Int
	Reserve1  *uint256.Int
	Timestamp uint64
}

// HasReserves reports whether both reserves are known.
func (u ReserveUpdate) HasReserves() bool {
	return u.Reserve0 != nil && u.Reserve1 != nil
}

// Batch is one coherent set of reserve updates, usually corresponding to a
// single block or a single bootstrap snapshot.
type Batch []ReserveUpdate

// Logger defines a standard interface for structured, leveled logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Source is the minimal consumer contract a reserve feed must satisfy,
// grounded on the teacher's chains.Client: a channel of state (here,
// batches of reserve updates) and a channel of fatal errors.
type Source interface {
	// Updates returns a read-only channel of reserve-update batches.
	Updates() <-chan Batch
	// Err returns a read-only channel for receiving fatal (unrecoverable)
	// errors. The channel is closed when the source shuts down.
	Err() <-chan error
}
