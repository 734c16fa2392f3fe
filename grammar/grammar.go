// Package grammar implements a context-free grammar's data model: the
// production store, body slices and FIRST/FOLLOW sets, the FIRST/FOLLOW
// fixed-point engine and test_select oracle, the label (slot) generator,
// and the nofollow/reject/precedence filter-entry tables the parsing
// engine consumes. It is exported for the engine package to drive.
//
// There is no lexical or meta-grammar front end that builds a Grammar
// from source text; callers construct one through Builder directly, or
// via the small JSON descriptor cmd/cnp reads.
package grammar

import "fmt"

// Symbol is an interned terminal or non-terminal reference. It is
// comparable and safe to use as a map key.
type Symbol = symbol

// NilSymbol is the zero value of Symbol; no real symbol ever equals it.
const NilSymbol = symbolNil

func (s Symbol) IsTerminal() bool    { return symbol(s).isTerminal() }
func (s Symbol) IsNonTerminal() bool { return symbol(s).isNonTerminal() }
func (s Symbol) IsStart() bool       { return symbol(s).isStart() }
func (s Symbol) IsEOF() bool         { return symbol(s).isEOF() }
func (s Symbol) IsNil() bool         { return symbol(s).isNil() }

// BodyIndex is the insertion-ordered position of a body within its
// head's bodies.
type BodyIndex = bodyIndex

// Slot is the (head, body-index, dot) dispatch label the engine's
// worklist schedules on.
type Slot = slot

func (s Slot) Head() Symbol      { return s.head }
func (s Slot) Index() BodyIndex  { return s.index }
func (s Slot) Dot() int          { return s.dot }
func (s Slot) String() string {
	return fmt.Sprintf("%v.%v@%v", s.head, int(s.index), s.dot)
}

// Body is one production body: an ordered, possibly empty sequence of
// symbols.
type Body = *production

// Len returns the number of symbols in the body.
func (p *production) Len() int { return p.length() }

// At returns the symbol at dot, or NilSymbol past the end.
func (p *production) At(dot int) Symbol { return p.at(dot) }

// HeadSymbol returns the non-terminal this body belongs to.
func (p *production) HeadSymbol() Symbol { return p.head }

// Index returns this body's position among its head's bodies.
func (p *production) Index() BodyIndex { return p.index }

// IsEmptyBody reports whether this is an ε-body.
func (p *production) IsEmptyBody() bool { return p.isEmpty() }

// TerminalDef is a terminal symbol's matching rule: a charset or a
// literal code-point sequence.
type TerminalDef = terminalDef

// Width is the number of code-points a successful match consumes.
func (t *terminalDef) Width() int { return t.width() }

// MatchAt reports how many code-points of in, starting at pos, this
// terminal consumes (0 on mismatch).
func (t *terminalDef) MatchAt(in []rune, pos int) int { return t.matchAt(in, pos) }

// acceptsLead reports whether c could be the first code-point of a match
// of t — the one-character lookahead test_select uses.
func (t *terminalDef) acceptsLead(c rune) bool {
	if t == nil {
		return false
	}
	switch t.kind {
	case terminalKindCharset:
		return t.charset.Contains(c)
	case terminalKindLiteral:
		return len(t.literal) > 0 && t.literal[0] == c
	}
	return false
}

// FilterEntry is the {charset | literal-string | head-idx} tagged value
// nofollow(A)/reject(A) return.
type FilterEntry = filterEntry

type FilterEntryKind = filterEntryKind

const (
	FilterEntryCharset = filterEntryCharset
	FilterEntryLiteral = filterEntryLiteral
	FilterEntryHead    = filterEntryHead
)

func (f *filterEntry) Kind() FilterEntryKind { return f.kind }
func (f *filterEntry) Charset() *RuneSet     { return f.charset }
func (f *filterEntry) Literal() []rune       { return f.literal }
func (f *filterEntry) HeadSymbol() Symbol    { return f.head }

// PrecedenceEntry binds a production to a precedence level and
// associativity.
type PrecedenceEntry = precedenceEntry

func (p PrecedenceEntry) Index() BodyIndex { return p.index }
func (p PrecedenceEntry) Level() int       { return p.level }
func (p PrecedenceEntry) Assoc() Assoc     { return p.assoc }

// Grammar is the finalized, immutable grammar store. It is safe for
// concurrent read-only use by multiple parser contexts.
type Grammar struct {
	symbols *symbolTable
	prods   *productionSet
	first   *firstTable
	follow  *followTable
	labels  *labelTable
	filters *filterTable
	start   Symbol
}

// IsTerminal reports whether s is a terminal symbol.
func (g *Grammar) IsTerminal(s Symbol) bool { return s.isTerminal() }

// LookupSymbol returns the text a symbol was registered under.
func (g *Grammar) LookupSymbol(s Symbol) (string, bool) {
	return g.symbols.reader().toText(s)
}

// Productions returns every head that has at least one body, in the
// order the builder first added a body for them — insertion order matters
// because slot identity depends on it.
func (g *Grammar) Productions() []Symbol {
	return append([]Symbol(nil), g.prods.heads...)
}

// Bodies returns head's bodies in insertion order.
func (g *Grammar) Bodies(head Symbol) []Body {
	return g.prods.bodies(head)
}

// BodyAt returns the body at index idx for head.
func (g *Grammar) BodyAt(head Symbol, idx BodyIndex) (Body, bool) {
	return g.prods.body(head, idx)
}

// StartSymbol returns the grammar's start non-terminal.
func (g *Grammar) StartSymbol() Symbol { return g.start }

// Nofollow returns head's nofollow filter entry, if any.
func (g *Grammar) Nofollow(head Symbol) (*FilterEntry, bool) {
	e, ok := g.filters.nofollow[head]
	return e, ok
}

// Reject returns head's reject filter entry, if any.
func (g *Grammar) Reject(head Symbol) (*FilterEntry, bool) {
	e, ok := g.filters.reject[head]
	return e, ok
}

// PrecedenceEntries returns every precedence/associativity entry
// declared for bodies of head.
func (g *Grammar) PrecedenceEntries(head Symbol) []PrecedenceEntry {
	return g.filters.precedence[head]
}

// TerminalDefOf returns s's matching rule, or nil if s is not a terminal.
func (g *Grammar) TerminalDefOf(s Symbol) *TerminalDef {
	return g.symbols.reader().terminalDef(s)
}

// Follow reports whether c (the code-point at the current cursor, or any
// rune if the cursor is at end-of-input — see atEOF) can follow A.
// FOLLOW sets are kept only for non-terminals; for a terminal a, Follow
// reports false.
func (g *Grammar) Follow(a Symbol, c rune, atEOF bool) (bool, error) {
	if a.isTerminal() {
		return false, nil
	}
	flw, err := g.follow.of(a)
	if err != nil {
		return false, err
	}
	if atEOF && flw.special {
		return true, nil
	}
	for s := range flw.terms {
		if g.TerminalDefOf(s).acceptsLead(c) {
			return true, nil
		}
	}
	return false, nil
}

// TestSelect is the one-character lookahead oracle over raw input: true
// iff the code-point at (in, pos) could begin a derivation of body[dot:], or
// body[dot:] is nullable and that code-point (or end-of-input) is in
// FOLLOW(head). This is the one-character lookahead guard; actually
// consuming a terminal uses TerminalDef.MatchAt instead.
func (g *Grammar) TestSelect(in []rune, pos int, head Symbol, body Body, dot int) (bool, error) {
	sl := bodySlice{prod: body, start: dot, stop: body.length()}
	fb, err := g.first.ofSlice(sl)
	if err != nil {
		return false, err
	}
	atEOF := pos >= len(in)
	var c rune
	if !atEOF {
		c = in[pos]
	}
	if !atEOF {
		for s := range fb.terms {
			if g.TerminalDefOf(s).acceptsLead(c) {
				return true, nil
			}
		}
	}
	if !fb.special {
		return false, nil
	}
	return g.Follow(head, c, atEOF)
}

// InitialSlots returns the dot-0 slots for every body of head — the
// seeds nonterminalAdd enumerates when a call reaches a new non-terminal.
func (g *Grammar) InitialSlots(head Symbol) []Slot {
	return g.labels.initialSlots(head)
}

// AllSlots returns every slot the label generator produced for head: the
// dot-0 slot of each body plus every slot immediately following a
// non-terminal. Exposed for inspection (cmd/cnp show); the engine
// constructs the call/return slots it actually dispatches to directly
// via NewSlot rather than looking them up here.
func (g *Grammar) AllSlots(head Symbol) []Slot {
	return g.labels.all(head)
}

// NewSlot constructs a Slot value; the engine uses it to build the slots
// its call/return handling references.
func NewSlot(head Symbol, idx BodyIndex, dot int) Slot {
	return slot{head: head, index: idx, dot: dot}
}

func (g *Grammar) validate() error {
	if g.start.isNil() {
		return errNoStartSymbol
	}
	if _, ok := g.prods.byHead[g.start]; !ok {
		return errNoProduction
	}
	for _, prod := range g.prods.all() {
		for _, s := range prod.body {
			if s.isNil() {
				return errDanglingBodyRef
			}
			if s.isNonTerminal() {
				if _, ok := g.prods.byHead[s]; !ok {
					return fmt.Errorf("%w: %v has no productions", errUndefinedSymbol, s)
				}
			} else if !s.isEOF() {
				if g.symbols.reader().terminalDef(s) == nil {
					return fmt.Errorf("%w: terminal %v has no matching rule", errUndefinedSymbol, s)
				}
			}
		}
	}
	return nil
}
