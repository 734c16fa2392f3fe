package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDigitExpr builds S ::= S '+' S | digit, an ambiguous
// left-and-right-recursive grammar over a single-digit charset terminal,
// used by several tests below and mirrored in engine package's E2/E3
// scenarios.
func buildDigitExpr(t *testing.T) *Grammar {
	t.Helper()
	b := NewBuilder()
	b.DeclareStart("S")
	s := b.DeclareNonTerminal("S")
	plus := b.DeclareLiteralTerminal("PLUS", "+")
	digit := b.DeclareCharsetTerminal("DIGIT", NewRuneSet([2]rune{'0', '9'}))
	b.AddProduction(s, []Symbol{s, plus, s})
	b.AddProduction(s, []Symbol{digit})
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestBuilderBuildRejectsMissingStart(t *testing.T) {
	b := NewBuilder()
	nt := b.DeclareNonTerminal("S")
	b.AddProduction(nt, []Symbol{})
	_, err := b.Build()
	assert.ErrorIs(t, err, errNoStartSymbol)
}

func TestBuilderBuildRejectsNoProductions(t *testing.T) {
	b := NewBuilder()
	b.DeclareStart("S")
	_, err := b.Build()
	assert.ErrorIs(t, err, errNoProduction)
}

func TestBuilderBuildRejectsDanglingReference(t *testing.T) {
	b := NewBuilder()
	b.DeclareStart("S")
	s := b.DeclareNonTerminal("S")
	undeclared, err := newSymbol(symbolKindNonTerminal, false, symbolNum(99))
	require.NoError(t, err)
	b.AddProduction(s, []Symbol{undeclared})
	_, err = b.Build()
	assert.ErrorIs(t, err, errUndefinedSymbol)
}

func TestGrammarTestSelectOverTerminalPrefix(t *testing.T) {
	g := buildDigitExpr(t)
	s := g.StartSymbol()
	bodies := g.Bodies(s)

	var recursive, base Body
	for _, b := range bodies {
		if b.Len() == 3 {
			recursive = b
		} else {
			base = b
		}
	}
	require.NotNil(t, recursive)
	require.NotNil(t, base)

	in := []rune("3+4")
	ok, err := g.TestSelect(in, 0, s, recursive, 0)
	require.NoError(t, err)
	assert.True(t, ok, "digit at position 0 should select the recursive body")

	ok, err = g.TestSelect(in, 0, s, base, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.TestSelect([]rune("+4"), 0, s, recursive, 0)
	require.NoError(t, err)
	assert.False(t, ok, "'+' cannot begin a digit")
}

func TestGrammarFollowEndOfInput(t *testing.T) {
	g := buildDigitExpr(t)
	ok, err := g.Follow(g.StartSymbol(), 0, true)
	require.NoError(t, err)
	assert.True(t, ok, "the start symbol is always followed by end-of-input")
}

func TestGrammarFollowRejectsUnrelatedCharacter(t *testing.T) {
	g := buildDigitExpr(t)
	ok, err := g.Follow(g.StartSymbol(), 'x', false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllSlotsIncludesPostNonTerminalSlots(t *testing.T) {
	g := buildDigitExpr(t)
	s := g.StartSymbol()
	var sawDotOne, sawDotThree bool
	for _, sl := range g.AllSlots(s) {
		if sl.Index() == 0 {
			switch sl.Dot() {
			case 1:
				sawDotOne = true
			case 3:
				sawDotThree = true
			}
		}
	}
	assert.True(t, sawDotOne, "dot-1 slot follows S in S ::= S + S")
	assert.True(t, sawDotThree, "dot-3 slot is the completed-production slot")
}
