package engine

import "github.com/kaelindev/cnp/grammar"

// Engine is the parsing driver. One Engine is Initialize'd with a
// single *grammar.Grammar and can then drive any number of Contexts,
// including nested sub-parse Contexts a filter evaluation spawns. The
// Engine itself holds no per-parse state.
type Engine struct {
	gram *grammar.Grammar
}

// Allocate returns an empty, uninitialized Engine.
func Allocate() *Engine {
	return &Engine{}
}

// Initialize wires g into the engine. FIRST, FOLLOW, and the label
// table are computed once, by grammar.Builder.Build, before a Grammar
// ever reaches here, so Initialize's job is simply to validate and
// retain the reference.
func (e *Engine) Initialize(g *grammar.Grammar) error {
	if g == nil {
		return errGrammarNotInitialized
	}
	e.gram = g
	return nil
}

// Release drops the engine's grammar reference.
func (e *Engine) Release() {
	e.gram = nil
}

// MakeContext creates a fresh parse context over in, entering at start.
// whole requires the full input to be consumed for success; sub marks a
// filter sub-parse context, which stops at the first success.
func (e *Engine) MakeContext(in []rune, start grammar.Symbol, whole, sub bool) *Context {
	return newContext(in, start, whole, sub)
}

// ReleaseContext drops ctx's CRF/P/Y/worklist so they can be collected
// immediately, rather than waiting on ctx itself to become unreachable.
func (e *Engine) ReleaseContext(ctx *Context) {
	ctx.crf = nil
	ctx.p = nil
	ctx.Y = nil
	ctx.w = nil
}

// Parse drains ctx's descriptor worklist to completion and reports the
// success bit.
func (e *Engine) Parse(ctx *Context) (bool, error) {
	if e.gram == nil {
		return false, errGrammarNotInitialized
	}

	ctx.crf.internCluster(ctx.start, 0)
	if err := e.nonterminalAdd(ctx, ctx.start, 0); err != nil {
		return false, err
	}

	for !ctx.w.empty() {
		if ctx.sub && ctx.success {
			break // sub-parses exit as soon as success is set
		}
		d := ctx.w.pop()
		ctx.Stats.DescriptorsProcessed++
		ctx.cU = d.K
		ctx.cI = d.J
		if ctx.cI > ctx.furthest {
			ctx.furthest = ctx.cI
		}
		if err := e.handleLabel(ctx, d.L); err != nil {
			return false, err
		}
	}

	if !ctx.sub {
		if err := e.applyPrecedence(ctx); err != nil {
			return false, err
		}
	}

	return ctx.success, nil
}

// handleLabel dispatches on slot L = (A, p, dot).
func (e *Engine) handleLabel(ctx *Context, L grammar.Slot) error {
	head := L.Head()
	body, ok := e.gram.BodyAt(head, L.Index())
	if !ok {
		return errUnknownSlot
	}
	dotInitial := L.Dot()
	dot := dotInitial

	if body.Len() == 0 {
		key := prodBSRKey{head: head, index: L.Index(), i: ctx.cI, k: ctx.cI}
		e.insertBSR(ctx, key, ctx.cI)
		return e.maybeReturn(ctx, head)
	}

	for dot < body.Len() && body.At(dot).IsTerminal() {
		if dot > 0 {
			ok, err := e.gram.TestSelect(ctx.I, ctx.cI, head, body, dot)
			if err != nil {
				return err
			}
			if !ok {
				return nil // abandon: test_select rejected this derivation
			}
		}
		term := e.gram.TerminalDefOf(body.At(dot))
		width := term.MatchAt(ctx.I, ctx.cI)
		if width == 0 {
			// The one-character lookahead passed but the full (possibly
			// multi-code-point) literal does not actually match at cI:
			// abandon rather than advance on a partial match.
			return nil
		}
		j := ctx.cI
		ctx.cI += width
		dot++
		e.bsrAdd(ctx, grammar.NewSlot(head, L.Index(), dot), ctx.cU, j, ctx.cI)
	}

	if dot < body.Len() {
		if dot > 0 {
			ok, err := e.gram.TestSelect(ctx.I, ctx.cI, head, body, dot)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		next := grammar.NewSlot(head, L.Index(), dot+1)
		return e.call(ctx, next, ctx.cU, ctx.cI)
	}

	return e.maybeReturn(ctx, head)
}

// maybeReturn is the return check: require I[cI] in FOLLOW(A), require
// the nofollow/reject filters pass, then return_(A, cU, cI).
func (e *Engine) maybeReturn(ctx *Context, head grammar.Symbol) error {
	atEOF := ctx.cI >= ctx.m
	var c rune
	if !atEOF {
		c = ctx.I[ctx.cI]
	}
	ok, err := e.gram.Follow(head, c, atEOF)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	passes, err := e.rulePassesFilters(ctx, head)
	if err != nil {
		return err
	}
	if !passes {
		return nil
	}
	return e.return_(ctx, head, ctx.cU, ctx.cI)
}

// call handles a descriptor whose slot L is of the form A ::= alpha X . beta
// (dot > 0, the symbol before dot is non-terminal X); i, j are the call
// site's left extent and current cursor.
func (e *Engine) call(ctx *Context, L grammar.Slot, i, j int) error {
	body, ok := e.gram.BodyAt(L.Head(), L.Index())
	if !ok {
		return errUnknownSlot
	}
	x := body.At(L.Dot() - 1)

	labelsBefore := len(ctx.crf.labels)
	uIdx := ctx.crf.internLabel(L, i)
	if len(ctx.crf.labels) > labelsBefore {
		ctx.Stats.LabelNodesCreated++
	}

	clusterIdx, created := ctx.crf.internCluster(x, j)
	if created {
		ctx.Stats.ClusterNodesCreated++
		ctx.crf.addEdge(clusterIdx, uIdx)
		return e.nonterminalAdd(ctx, x, j)
	}

	if !ctx.crf.addEdge(clusterIdx, uIdx) {
		return nil // edge already existed: X's results at j were already replayed to this call site
	}
	for h := range ctx.processedReturns(x, j) {
		e.descriptorAdd(ctx, L, i, h)
		e.bsrAdd(ctx, L, i, j, h)
	}
	return nil
}

// return_ replays a completed non-terminal a's result (k, j) to every
// call site waiting on it in the CRF.
func (e *Engine) return_(ctx *Context, a grammar.Symbol, k, j int) error {
	if ctx.processedAt(a, k, j) {
		return nil
	}
	ctx.markProcessed(a, k, j)
	clusterIdx, ok := ctx.crf.lookupCluster(a, k)
	if !ok {
		return nil
	}
	for _, ln := range ctx.crf.childLabels(clusterIdx) {
		lp := ln.key.l
		i := ln.key.pos
		e.descriptorAdd(ctx, lp, i, j)
		e.bsrAdd(ctx, lp, i, k, j)
	}
	return nil
}

// bsrAdd applies the key-selection rule given a slot whose dot already
// reflects the symbol just consumed or just called.
func (e *Engine) bsrAdd(ctx *Context, l grammar.Slot, i, j, k int) {
	body, ok := e.gram.BodyAt(l.Head(), l.Index())
	if !ok {
		return
	}
	dot := l.Dot()
	var key bsrKey
	switch {
	case dot == body.Len():
		key = prodBSRKey{head: l.Head(), index: l.Index(), i: i, k: k}
	case dot > 1:
		key = strBSRKey{head: l.Head(), index: l.Index(), dot: dot, i: i, k: k}
	default:
		return // dot <= 1: a single-symbol prefix carries no split information
	}
	e.insertBSR(ctx, key, j)
}

func (e *Engine) insertBSR(ctx *Context, key bsrKey, pivot int) {
	newKey := ctx.Y.pivotsOf(key) == nil
	if !ctx.Y.insert(key, pivot) {
		return
	}
	if newKey {
		ctx.Stats.BSRKeysInserted++
	}
	if pk, ok := key.(prodBSRKey); ok {
		if pk.head == ctx.start && pk.i == 0 && (!ctx.whole || pk.k == ctx.m) {
			ctx.success = true
		}
	}
}

// nonterminalAdd seeds a dot-0 descriptor for every body of x whose
// test_select accepts the input at j — run both when the parse starts
// at x and whenever a call reaches x for the first time at position j.
func (e *Engine) nonterminalAdd(ctx *Context, x grammar.Symbol, j int) error {
	for _, body := range e.gram.Bodies(x) {
		ok, err := e.gram.TestSelect(ctx.I, j, x, body, 0)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		e.descriptorAdd(ctx, grammar.NewSlot(x, body.Index(), 0), j, j)
	}
	return nil
}

// descriptorAdd schedules a descriptor for processing, deduplicated
// against every descriptor already seen this parse.
func (e *Engine) descriptorAdd(ctx *Context, l grammar.Slot, k, j int) {
	ctx.w.add(Descriptor{L: l, K: k, J: j})
}
