package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolHasReserves(t *testing.T) {
	assert.True(t, poolFrom("F1", "A", "B", 100, 200).HasReserves())
	assert.False(t, barePoolFrom("F1", "A", "B").HasReserves())
}
