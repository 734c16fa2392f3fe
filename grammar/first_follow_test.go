package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNestedExpr builds a small nested-expression grammar with no empty
// productions:
//
//	Expr   ::= Term '+' Expr | Term
//	Term   ::= '(' Expr ')' | Id
func buildNestedExpr(t *testing.T) (*Grammar, map[string]Symbol) {
	t.Helper()
	b := NewBuilder()
	b.DeclareStart("Expr")
	sym := map[string]Symbol{}
	sym["Expr"] = b.DeclareNonTerminal("Expr")
	sym["Term"] = b.DeclareNonTerminal("Term")
	sym["Plus"] = b.DeclareLiteralTerminal("Plus", "+")
	sym["LParen"] = b.DeclareLiteralTerminal("LParen", "(")
	sym["RParen"] = b.DeclareLiteralTerminal("RParen", ")")
	sym["Id"] = b.DeclareCharsetTerminal("Id", NewRuneSet([2]rune{'a', 'z'}))

	b.AddProduction(sym["Expr"], []Symbol{sym["Term"], sym["Plus"], sym["Expr"]})
	b.AddProduction(sym["Expr"], []Symbol{sym["Term"]})
	b.AddProduction(sym["Term"], []Symbol{sym["LParen"], sym["Expr"], sym["RParen"]})
	b.AddProduction(sym["Term"], []Symbol{sym["Id"]})

	g, err := b.Build()
	require.NoError(t, err)
	return g, sym
}

func TestTestSelectAcceptsEveryFirstAlternative(t *testing.T) {
	g, sym := buildNestedExpr(t)

	for _, in := range []string{"a+b", "(a)+b", "z"} {
		ok, err := g.TestSelect([]rune(in), 0, sym["Expr"], g.Bodies(sym["Expr"])[0], 0)
		require.NoError(t, err)
		assert.True(t, ok, "input %q should select Expr's first body", in)
	}

	ok, err := g.TestSelect([]rune("+a"), 0, sym["Expr"], g.Bodies(sym["Expr"])[0], 0)
	require.NoError(t, err)
	assert.False(t, ok, "'+' cannot begin either Term alternative")
}

func TestFollowPropagatesThroughNesting(t *testing.T) {
	g, sym := buildNestedExpr(t)

	// ')' can follow Expr, because Term ::= '(' Expr ')'.
	ok, err := g.Follow(sym["Expr"], ')', false)
	require.NoError(t, err)
	assert.True(t, ok)

	// end-of-input can follow Expr, since Expr is the start symbol.
	ok, err = g.Follow(sym["Expr"], 0, true)
	require.NoError(t, err)
	assert.True(t, ok)

	// FOLLOW is kept only for non-terminals: asking about the terminal Id
	// reports false rather than an error.
	ok, err = g.Follow(sym["Id"], 'x', false)
	require.NoError(t, err)
	assert.False(t, ok, "Id is a terminal; FOLLOW is only meaningful for non-terminals")
}

func TestNullableProductionMarksFirstSpecial(t *testing.T) {
	b := NewBuilder()
	b.DeclareStart("S")
	s := b.DeclareNonTerminal("S")
	opt := b.DeclareNonTerminal("Opt")
	digit := b.DeclareCharsetTerminal("Digit", NewRuneSet([2]rune{'0', '9'}))
	b.AddProduction(opt, []Symbol{}) // Opt ::= epsilon
	b.AddProduction(opt, []Symbol{digit})
	b.AddProduction(s, []Symbol{opt})

	g, err := b.Build()
	require.NoError(t, err)

	// Since Opt is nullable, S accepts end-of-input immediately (S can
	// derive the empty string).
	ok, err := g.TestSelect([]rune{}, 0, s, g.Bodies(s)[0], 0)
	require.NoError(t, err)
	assert.True(t, ok)
}
