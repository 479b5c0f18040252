package arb

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCycleValid(t *testing.T) {
	_, err := NewCycle([]Swap{
		swapFrom("F3", "A", "B", 300, 120),
		swapFrom("F2", "B", "C", 200, 300),
		swapFrom("F1", "C", "A", 100, 200),
	})
	require.NoError(t, err)
}

func TestNewCycleTooShort(t *testing.T) {
	_, err := NewCycle([]Swap{swapFrom("F1", "A", "B", 100, 200)})
	require.ErrorIs(t, err, ErrCycleTooShort)
}

func TestNewCycleReciprocalSwaps(t *testing.T) {
	pool := poolFrom("F1", "A", "B", 100, 200)
	_, err := NewCycle([]Swap{Forward(pool), Reverse(pool)})
	require.ErrorIs(t, err, ErrCycleReciprocalSwaps)
}

func TestNewCycleDuplicateTokens(t *testing.T) {
	_, err := NewCycle([]Swap{
		swapFrom("F1", "A", "B", 100, 200),
		swapFrom("F2", "B", "C", 100, 200),
		swapFrom("F3", "C", "A", 100, 200),
		swapFrom("F1", "A", "B", 200, 100),
		swapFrom("F2", "B", "A", 200, 100),
	})
	require.ErrorIs(t, err, ErrCycleDuplicateTokens)
}

func TestNewCycleTokenMismatch(t *testing.T) {
	_, err := NewCycle([]Swap{
		swapFrom("F1", "A", "B", 100, 200),
		swapFrom("F2", "C", "D", 200, 100),
	})
	require.ErrorIs(t, err, ErrCycleTokenMismatch)
}

func TestNewCycleNonSimpleCycle(t *testing.T) {
	_, err := NewCycle([]Swap{
		swapFrom("F1", "A", "B", 100, 200),
		Forward(poolFrom("F2", "B", "C", 100, 200)),
		Forward(poolFrom("F3", "C", "B", 100, 200)),
		swapFrom("F4", "B", "A", 200, 100),
	})
	require.ErrorIs(t, err, ErrCycleDuplicateTokens)
}

func TestCycleLogRate(t *testing.T) {
	swap1 := swapFrom("F1", "A", "B", 100, 200)
	assert.Equal(t, int64(299_725), swap1.LogRate())
	swap2 := swapFrom("F2", "B", "A", 300, 100)
	assert.Equal(t, int64(-478_426), swap2.LogRate())

	cycle, err := NewCycle([]Swap{swap1, swap2})
	require.NoError(t, err)
	assert.Equal(t, int64(299_725-478_426), cycle.logRate())
}

func TestBestQuoteNotExploitable(t *testing.T) {
	cycle := cycleFrom([][5]any{
		{"F1", "A", "B", 100, 200},
		{"F2", "B", "A", 300, 100},
	})
	best, err := cycle.BestQuote()
	require.NoError(t, err)

	assert.Equal(t, u256(0), best.AmountIn())
	assert.Equal(t, u256(0), best.AmountOut())
	assert.Equal(t, big.NewInt(0), best.Profit())
	assert.Equal(t, int32(0), best.ProfitMargin())
}

func TestBestQuoteExploitable(t *testing.T) {
	cycle := cycleFrom([][5]any{
		{"F1", "A", "B", 1_000_000, 2_000_000},
		{"F2", "B", "A", 3_000_000, 3_000_000},
	})
	require.True(t, cycle.IsPositive())

	best, err := cycle.BestQuote()
	require.NoError(t, err)

	quotes := best.SwapQuotes()
	require.Len(t, quotes, 2)
	assert.Equal(t, u256(248_054), quotes[0].AmountIn)
	assert.Equal(t, u256(396_549), quotes[0].AmountOut)
	assert.Equal(t, u256(396_549), quotes[1].AmountIn)
	assert.Equal(t, u256(349_323), quotes[1].AmountOut)

	assert.Equal(t, u256(248_054), best.AmountIn())
	assert.Equal(t, big.NewInt(101_269), best.Profit())
}

func TestBestQuoteWithWildExchangeRate(t *testing.T) {
	cycle := cycleFrom([][5]any{
		{"F1", "A", "B", 1_000_000, 2_000_000_000_000_000_000},
		{"F2", "B", "A", 2_000_000_000_000_000_000, 2_000_000},
	})
	require.True(t, cycle.IsPositive())

	best, err := cycle.BestQuote()
	require.NoError(t, err)

	quotes := best.SwapQuotes()
	require.Len(t, quotes, 2)
	assert.Equal(t, u256(204_322), quotes[0].AmountIn)
	assert.Equal(t, u256(338_468_896_130_258_668), quotes[0].AmountOut)
	assert.Equal(t, u256(338_468_896_130_258_668), quotes[1].AmountIn)
	assert.Equal(t, u256(288_736), quotes[1].AmountOut)

	assert.Equal(t, u256(204_322), best.AmountIn())
	assert.Equal(t, big.NewInt(84_414), best.Profit())
	assert.Equal(t, int32(4131), best.ProfitMargin())
}

func TestCycleEqualityAndRotation(t *testing.T) {
	cycle1 := cycleFrom([][5]any{
		{"F1", "A", "B", 100, 200},
		{"F2", "B", "C", 300, 100},
		{"F3", "C", "A", 100, 200},
	})

	cycle2 := cycleFrom([][5]any{
		{"F2", "B", "C", 30, 10},
		{"F3", "C", "A", 10, 20},
		{"F1", "A", "B", 10, 20},
	})

	cycle3 := cycleFrom([][5]any{
		{"F3", "C", "A", 10, 20},
		{"F1", "A", "B", 10, 20},
		{"F2", "B", "C", 30, 10},
	})

	assert.True(t, cycle1.Equal(cycle1))
	assert.True(t, cycle1.Equal(cycle2))
	assert.True(t, cycle2.Equal(cycle1))
	assert.True(t, cycle1.Equal(cycle3))
	assert.Equal(t, cycle1.Key(), cycle2.Key())
	assert.Equal(t, cycle1.Key(), cycle3.Key())
}

func TestCycleInequality(t *testing.T) {
	cycle1 := cycleFrom([][5]any{
		{"F1", "A", "B", 100, 200},
		{"F2", "B", "C", 300, 100},
		{"F3", "C", "A", 100, 200},
	})

	cycle2 := cycleFrom([][5]any{
		{"F1", "B", "A", 100, 200},
		{"F2", "A", "C", 300, 100},
		{"F3", "C", "B", 100, 200},
	})

	assert.False(t, cycle1.Equal(cycle2))
}
