package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenIDCmp(t *testing.T) {
	a := tokenFrom("A")
	b := tokenFrom("B")
	assert.True(t, a.Cmp(b) < 0)
	assert.True(t, b.Cmp(a) > 0)
	assert.Equal(t, 0, a.Cmp(a))
}

func TestNewToken(t *testing.T) {
	id := tokenFrom("A")
	tok := NewToken(id)
	assert.Equal(t, id, tok.ID)
}
