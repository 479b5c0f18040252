package arb

// WorldUpdate is the set of cycles touched by a single World.Update call,
// along with the classification helpers a caller needs to decide what to
// act on.
type WorldUpdate struct {
	cycles []Cycle
}

// NewWorldUpdate wraps the cycles touched by an update.
func NewWorldUpdate(cycles []Cycle) *WorldUpdate {
	return &WorldUpdate{cycles: cycles}
}

// Cycles returns every cycle touched by the update, in no particular order.
func (u *WorldUpdate) Cycles() []Cycle {
	return u.cycles
}

// HasAllReserves reports whether every touched cycle has full reserves —
// false only when a cycle references a pool ingestion has not yet synced.
func (u *WorldUpdate) HasAllReserves() bool {
	for _, c := range u.cycles {
		if !c.HasAllReserves() {
			return false
		}
	}
	return true
}

// SwapsWithNoReserves returns every swap, across all touched cycles, that
// is still missing reserves.
func (u *WorldUpdate) SwapsWithNoReserves() []Swap {
	var out []Swap
	for _, c := range u.cycles {
		out = append(out, c.SwapsWithNoReserves()...)
	}
	return out
}

// BestCycleQuotes computes BestQuote for every touched cycle. Panics (via
// Swap.ReserveIn's precondition) unless HasAllReserves.
func (u *WorldUpdate) BestCycleQuotes() ([]CycleQuote, error) {
	quotes := make([]CycleQuote, 0, len(u.cycles))
	for i := range u.cycles {
		q, err := u.cycles[i].BestQuote()
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// PositiveCycles returns the touched cycles whose summed log rate is
// positive — a cheap pre-filter before the more expensive BestQuote.
// Panics if !HasAllReserves, same precondition as the engine's log-rate sum.
func (u *WorldUpdate) PositiveCycles() []Cycle {
	if !u.HasAllReserves() {
		panic(ErrCycleNotQuotable)
	}
	var out []Cycle
	for _, c := range u.cycles {
		if c.IsPositive() {
			out = append(out, c)
		}
	}
	return out
}

// ProfitableCycles returns the touched cycles that are both positive-rate
// and, after slippage, actually profitable at their optimal amountIn.
func (u *WorldUpdate) ProfitableCycles() ([]Cycle, error) {
	var out []Cycle
	for _, c := range u.PositiveCycles() {
		q, err := c.BestQuote()
		if err != nil {
			return nil, err
		}
		if q.IsProfitable() {
			out = append(out, c)
		}
	}
	return out, nil
}

// UnprofitableCycles returns every touched cycle whose best quote is not
// profitable, regardless of its raw log rate sign.
func (u *WorldUpdate) UnprofitableCycles() ([]Cycle, error) {
	var out []Cycle
	for _, c := range u.cycles {
		q, err := c.BestQuote()
		if err != nil {
			return nil, err
		}
		if !q.IsProfitable() {
			out = append(out, c)
		}
	}
	return out, nil
}

// ProfitableCycleQuotes is ProfitableCycles with each cycle's best quote
// already computed.
func (u *WorldUpdate) ProfitableCycleQuotes() ([]CycleQuote, error) {
	profitable, err := u.ProfitableCycles()
	if err != nil {
		return nil, err
	}
	quotes := make([]CycleQuote, 0, len(profitable))
	for i := range profitable {
		q, err := profitable[i].BestQuote()
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
