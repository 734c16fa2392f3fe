package engine

import "github.com/kaelindev/cnp/grammar"

// pKey is the processed-returns key (non-terminal, k).
type pKey struct {
	nt grammar.Symbol
	k  int
}

// Stats are instrumentation counters tracking descriptor and CRF/BSR
// growth, useful for confirming the engine is sharing call state rather
// than reprocessing work. Filled in unconditionally — the counters are
// plain integer increments, not a separate build mode.
type Stats struct {
	DescriptorsProcessed int
	ClusterNodesCreated  int
	LabelNodesCreated    int
	BSRKeysInserted      int
}

// Context is a single parse's mutable state: the input, cursor, CRF,
// P-map, BSR forest, descriptor worklist, and control flags. A Context
// is created fresh per parse and per filter sub-parse and is never
// shared across goroutines.
type Context struct {
	I []rune
	m int

	cI int // current cursor
	cU int // current call origin (left extent of the innermost active non-terminal)

	crf *crf
	p   map[pKey]map[int]struct{}
	Y   *bsrForest
	w   *worklist

	start grammar.Symbol
	whole bool
	sub   bool

	success bool

	// furthest is the greatest cI any descriptor reached — a cheap
	// error-recovery heuristic: the likely failure site is wherever the
	// parse got furthest before running out of alternatives.
	furthest int

	Stats Stats
}

func newContext(in []rune, start grammar.Symbol, whole, sub bool) *Context {
	return &Context{
		I:     in,
		m:     len(in),
		crf:   newCRF(),
		p:     map[pKey]map[int]struct{}{},
		Y:     newBSRForest(),
		w:     newWorklist(),
		start: start,
		whole: whole,
		sub:   sub,
	}
}

// Success reports whether the parse succeeded.
func (c *Context) Success() bool { return c.success }

// FurthestPos returns the greatest input cursor position reached by any
// descriptor during the parse, as a best-effort failure-site hint.
func (c *Context) FurthestPos() int { return c.furthest }

// Forest returns the BSR forest produced by the parse. Callers must
// consult Success before trusting its contents: on failure the forest
// may hold partial keys from abandoned derivations.
func (c *Context) Forest() *bsrForest { return c.Y }

func (c *Context) processedAt(nt grammar.Symbol, k, j int) bool {
	set, ok := c.p[pKey{nt: nt, k: k}]
	if !ok {
		return false
	}
	_, ok = set[j]
	return ok
}

func (c *Context) markProcessed(nt grammar.Symbol, k, j int) {
	key := pKey{nt: nt, k: k}
	set, ok := c.p[key]
	if !ok {
		set = map[int]struct{}{}
		c.p[key] = set
	}
	set[j] = struct{}{}
}

func (c *Context) processedReturns(nt grammar.Symbol, k int) map[int]struct{} {
	return c.p[pKey{nt: nt, k: k}]
}
