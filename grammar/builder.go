package grammar

import "fmt"

// Builder constructs a Grammar incrementally and finalizes it with
// Build, splitting mutable construction from the immutable Grammar it
// produces: no LALR tables, no semantic actions, no lexical scanning.
// There is no meta-grammar front end that would drive a Builder from
// source text; callers here (or cmd/cnp's JSON descriptor reader) drive
// it directly.
type Builder struct {
	symbols *symbolTable
	prods   *productionSet
	filters *filterTable
	start   Symbol
	started bool
	err     error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		symbols: newSymbolTable(),
		prods:   newProductionSet(),
		filters: newFilterTable(),
	}
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// DeclareStart registers name as the grammar's start non-terminal. It
// must be called exactly once, before any production referencing it.
func (b *Builder) DeclareStart(name string) *Builder {
	if b.started {
		b.fail(fmt.Errorf("%w: start symbol already declared", errDuplicateSymbol))
		return b
	}
	b.start = b.symbols.writer().registerStart(name)
	b.started = true
	return b
}

// DeclareNonTerminal registers name as a non-terminal, returning its
// Symbol for later use in AddProduction.
func (b *Builder) DeclareNonTerminal(name string) Symbol {
	s, err := b.symbols.writer().registerNonTerminal(name)
	if err != nil {
		b.fail(err)
	}
	return s
}

// DeclareCharsetTerminal registers name as a terminal matching any
// single code-point in rs.
func (b *Builder) DeclareCharsetTerminal(name string, rs *RuneSet) Symbol {
	s, err := b.symbols.writer().registerTerminal(name, &terminalDef{kind: terminalKindCharset, charset: rs})
	if err != nil {
		b.fail(err)
	}
	return s
}

// DeclareLiteralTerminal registers name as a terminal matching the
// literal code-point sequence lit.
func (b *Builder) DeclareLiteralTerminal(name string, lit string) Symbol {
	s, err := b.symbols.writer().registerTerminal(name, &terminalDef{kind: terminalKindLiteral, literal: []rune(lit)})
	if err != nil {
		b.fail(err)
	}
	return s
}

// AddProduction adds a body (possibly empty, for an ε-production) under
// head, returning its assigned BodyIndex.
func (b *Builder) AddProduction(head Symbol, body []Symbol) BodyIndex {
	prod, err := newProduction(head, body)
	if err != nil {
		b.fail(err)
		return 0
	}
	added := b.prods.append(prod)
	return added.index
}

func (b *Builder) SetNofollowCharset(head Symbol, rs *RuneSet) *Builder {
	b.filters.setNofollowCharset(head, rs)
	return b
}

func (b *Builder) SetNofollowLiteral(head Symbol, lit string) *Builder {
	b.filters.setNofollowLiteral(head, []rune(lit))
	return b
}

func (b *Builder) SetNofollowHead(head, other Symbol) *Builder {
	b.filters.setNofollowHead(head, other)
	return b
}

func (b *Builder) SetRejectCharset(head Symbol, rs *RuneSet) *Builder {
	b.filters.setRejectCharset(head, rs)
	return b
}

func (b *Builder) SetRejectLiteral(head Symbol, lit string) *Builder {
	b.filters.setRejectLiteral(head, []rune(lit))
	return b
}

func (b *Builder) SetRejectHead(head, other Symbol) *Builder {
	b.filters.setRejectHead(head, other)
	return b
}

func (b *Builder) AddPrecedence(head Symbol, idx BodyIndex, level int, assoc Assoc) *Builder {
	b.filters.addPrecedence(head, idx, level, assoc)
	return b
}

// Build computes FIRST/FOLLOW and the label table and returns the
// finalized Grammar, or the first construction error encountered.
func (b *Builder) Build() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.started {
		return nil, errNoStartSymbol
	}
	if len(b.prods.byHead) == 0 {
		return nil, errNoProduction
	}

	g := &Grammar{
		symbols: b.symbols,
		prods:   b.prods,
		filters: b.filters,
		start:   b.start,
	}
	if err := g.validate(); err != nil {
		return nil, err
	}

	first, err := computeFirst(b.prods)
	if err != nil {
		return nil, fmt.Errorf("FIRST computation failed: %w", err)
	}
	follow, err := computeFollow(b.prods, b.start, first)
	if err != nil {
		return nil, fmt.Errorf("FOLLOW computation failed: %w", err)
	}
	g.first = first
	g.follow = follow
	g.labels = computeLabels(b.prods)
	return g, nil
}
