package engine

import (
	"testing"

	"github.com/kaelindev/cnp/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aSlot(t *testing.T) grammar.Slot {
	t.Helper()
	b := grammar.NewBuilder()
	b.DeclareStart("S")
	s := b.DeclareNonTerminal("S")
	return grammar.NewSlot(s, 0, 1)
}

func TestWorklistAddDedupsAgainstU(t *testing.T) {
	w := newWorklist()
	d := Descriptor{L: aSlot(t), K: 0, J: 3}

	assert.True(t, w.add(d))
	assert.False(t, w.add(d), "adding the same descriptor twice must not re-enqueue it")
	assert.Equal(t, 1, w.known())
	assert.Equal(t, 1, w.pending())
}

func TestWorklistDistinguishesByAllThreeFields(t *testing.T) {
	w := newWorklist()
	l := aSlot(t)

	assert.True(t, w.add(Descriptor{L: l, K: 0, J: 0}))
	assert.True(t, w.add(Descriptor{L: l, K: 1, J: 0}), "different K is a different descriptor")
	assert.True(t, w.add(Descriptor{L: l, K: 0, J: 1}), "different J is a different descriptor")
	assert.Equal(t, 3, w.known())
}

func TestWorklistPopIsFIFO(t *testing.T) {
	w := newWorklist()
	l := aSlot(t)
	first := Descriptor{L: l, K: 0, J: 0}
	second := Descriptor{L: l, K: 0, J: 1}
	w.add(first)
	w.add(second)

	require.False(t, w.empty())
	assert.Equal(t, first, w.pop())
	require.False(t, w.empty())
	assert.Equal(t, second, w.pop())
	assert.True(t, w.empty())
}

func TestWorklistPendingShrinksAsItemsArePopped(t *testing.T) {
	w := newWorklist()
	l := aSlot(t)
	w.add(Descriptor{L: l, K: 0, J: 0})
	w.add(Descriptor{L: l, K: 0, J: 1})

	assert.Equal(t, 2, w.pending())
	w.pop()
	assert.Equal(t, 1, w.pending())
	assert.Equal(t, 2, w.known(), "known count never shrinks, only pending does")
}
