package engine

import (
	"testing"

	"github.com/kaelindev/cnp/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSymbols(t *testing.T) (grammar.Symbol, grammar.Symbol) {
	t.Helper()
	b := grammar.NewBuilder()
	b.DeclareStart("A")
	a := b.DeclareNonTerminal("A")
	c := b.DeclareNonTerminal("B")
	return a, c
}

func TestInternClusterIsIdempotent(t *testing.T) {
	a, _ := twoSymbols(t)
	c := newCRF()

	idx1, created1 := c.internCluster(a, 3)
	idx2, created2 := c.internCluster(a, 3)
	assert.True(t, created1)
	assert.False(t, created2)
	assert.Equal(t, idx1, idx2)
}

func TestInternClusterDistinguishesPosition(t *testing.T) {
	a, _ := twoSymbols(t)
	c := newCRF()

	idx1, _ := c.internCluster(a, 0)
	idx2, _ := c.internCluster(a, 1)
	assert.NotEqual(t, idx1, idx2)
}

func TestInternClusterDistinguishesSymbol(t *testing.T) {
	a, b := twoSymbols(t)
	c := newCRF()

	idx1, _ := c.internCluster(a, 0)
	idx2, _ := c.internCluster(b, 0)
	assert.NotEqual(t, idx1, idx2)
}

func TestAddEdgeReportsOnlyTheFirstInsertion(t *testing.T) {
	a, _ := twoSymbols(t)
	c := newCRF()
	clusterIdx, _ := c.internCluster(a, 0)
	labelIdx := c.internLabel(grammar.NewSlot(a, 0, 1), 0)

	assert.True(t, c.addEdge(clusterIdx, labelIdx))
	assert.False(t, c.addEdge(clusterIdx, labelIdx), "re-adding the same edge must be a no-op")
	assert.Len(t, c.childLabels(clusterIdx), 1)
}

func TestChildLabelsReflectsInsertionOrder(t *testing.T) {
	a, _ := twoSymbols(t)
	c := newCRF()
	clusterIdx, _ := c.internCluster(a, 0)

	l1 := c.internLabel(grammar.NewSlot(a, 0, 1), 0)
	l2 := c.internLabel(grammar.NewSlot(a, 1, 1), 0)
	require.True(t, c.addEdge(clusterIdx, l1))
	require.True(t, c.addEdge(clusterIdx, l2))

	children := c.childLabels(clusterIdx)
	require.Len(t, children, 2)
	assert.Equal(t, l1, c.labelIndex[children[0].key])
	assert.Equal(t, l2, c.labelIndex[children[1].key])
}

func TestLookupClusterFindsOnlyInternedClusters(t *testing.T) {
	a, b := twoSymbols(t)
	c := newCRF()
	c.internCluster(a, 5)

	idx, ok := c.lookupCluster(a, 5)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = c.lookupCluster(b, 5)
	assert.False(t, ok, "B was never interned at position 5")

	_, ok = c.lookupCluster(a, 6)
	assert.False(t, ok, "A was never interned at position 6")
}
