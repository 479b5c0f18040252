package arb

import "errors"

var (
	// ErrTokenMismatch is returned when a swap's input and output tokens are identical.
	ErrTokenMismatch = errors.New("swap token_in and token_out must be different")
	// ErrMissingReserves is the panic value when a swap's reserves or log rate are read while its reserves are not set.
	ErrMissingReserves = errors.New("swap must have reserves")
	// ErrCycleTooShort is returned when a cycle has fewer than two swaps.
	ErrCycleTooShort = errors.New("cycle must have at least 2 swaps")
	// ErrCycleTokenMismatch is returned when a swap's output token does not feed the next swap's input.
	ErrCycleTokenMismatch = errors.New("cycle swap output token does not match next swap input token")
	// ErrCycleDuplicateTokens is returned when a token appears as a vertex more than twice in a cycle.
	ErrCycleDuplicateTokens = errors.New("cycle contains duplicate tokens")
	// ErrCycleDuplicateSwaps is returned when the same swap appears more than once in a cycle.
	ErrCycleDuplicateSwaps = errors.New("cycle contains duplicate swaps")
	// ErrCycleReciprocalSwaps is returned when a cycle contains both directions of the same pool.
	ErrCycleReciprocalSwaps = errors.New("cycle contains reciprocal swaps")
	// ErrOptimizationDidNotConverge is returned when the bisection search exceeds its iteration budget.
	ErrOptimizationDidNotConverge = errors.New("cycle optimization failed to converge")
	// ErrCycleNotQuotable is the panic value when a cycle's log rate is taken (directly or via WorldUpdate.PositiveCycles) while a swap in it lacks reserves.
	ErrCycleNotQuotable = errors.New("cycle is not quotable: missing reserves")
)
