package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionSetAppendAssignsInsertionOrderIndices(t *testing.T) {
	ps := newProductionSet()
	head, err := newSymbol(symbolKindNonTerminal, true, numStart)
	require.NoError(t, err)
	term, err := newSymbol(symbolKindTerminal, false, terminalNumMin)
	require.NoError(t, err)

	p0, err := newProduction(head, []symbol{term})
	require.NoError(t, err)
	p1, err := newProduction(head, []symbol{term, term})
	require.NoError(t, err)

	a0 := ps.append(p0)
	a1 := ps.append(p1)
	assert.Equal(t, bodyIndex(0), a0.index)
	assert.Equal(t, bodyIndex(1), a1.index)
	assert.Equal(t, []symbol{head}, ps.heads)
}

func TestProductionSetAppendIsIdempotentOnDuplicateBody(t *testing.T) {
	ps := newProductionSet()
	head, err := newSymbol(symbolKindNonTerminal, true, numStart)
	require.NoError(t, err)
	term, err := newSymbol(symbolKindTerminal, false, terminalNumMin)
	require.NoError(t, err)

	p, err := newProduction(head, []symbol{term})
	require.NoError(t, err)
	dup, err := newProduction(head, []symbol{term})
	require.NoError(t, err)

	first := ps.append(p)
	second := ps.append(dup)
	assert.Same(t, first, second)
	assert.Len(t, ps.bodies(head), 1)
}

func TestProductionAtPastEndReturnsNil(t *testing.T) {
	head, err := newSymbol(symbolKindNonTerminal, true, numStart)
	require.NoError(t, err)
	term, err := newSymbol(symbolKindTerminal, false, terminalNumMin)
	require.NoError(t, err)
	p, err := newProduction(head, []symbol{term})
	require.NoError(t, err)

	assert.Equal(t, term, p.at(0))
	assert.True(t, p.at(1).isNil())
}

func TestNewProductionRejectsNilSymbols(t *testing.T) {
	head, err := newSymbol(symbolKindNonTerminal, true, numStart)
	require.NoError(t, err)
	_, err = newProduction(head, []symbol{symbolNil})
	assert.Error(t, err)
}
