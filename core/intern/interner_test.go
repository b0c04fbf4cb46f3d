package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterner_GetOrIntern(t *testing.T) {
	in := New()

	a := in.GetOrIntern("minecraft:iron_ingot")
	b := in.GetOrIntern("minecraft:gold_ingot")
	again := in.GetOrIntern("minecraft:iron_ingot")

	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)
	assert.NotZero(t, a)
	assert.Equal(t, 2, in.Len())
}

func TestInterner_Resolve(t *testing.T) {
	in := New()
	sym := in.GetOrIntern("gregtech:gt.metaitem.01")

	s, ok := in.Resolve(sym)
	assert.True(t, ok)
	assert.Equal(t, "gregtech:gt.metaitem.01", s)

	t.Run("Unknown Symbol", func(t *testing.T) {
		_, ok := in.Resolve(Symbol(42))
		assert.False(t, ok)
	})

	t.Run("Zero Symbol", func(t *testing.T) {
		_, ok := in.Resolve(0)
		assert.False(t, ok)
	})

	t.Run("Empty String", func(t *testing.T) {
		empty := in.GetOrIntern("")
		assert.NotZero(t, empty)
		s, ok := in.Resolve(empty)
		assert.True(t, ok)
		assert.Equal(t, "", s)
	})
}
