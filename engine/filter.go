package engine

import "github.com/kaelindev/cnp/grammar"

// rulePassesFilters runs the per-return filter check: nofollow(A) and
// reject(A) are both consulted immediately before return_.
func (e *Engine) rulePassesFilters(ctx *Context, a grammar.Symbol) (bool, error) {
	if nf, ok := e.gram.Nofollow(a); ok {
		rejected, err := e.nofollowRejects(ctx, nf)
		if err != nil {
			return false, err
		}
		if rejected {
			return false, nil
		}
	}
	if rj, ok := e.gram.Reject(a); ok {
		rejected, err := e.rejectRejects(ctx, rj)
		if err != nil {
			return false, err
		}
		if rejected {
			return false, nil
		}
	}
	return true, nil
}

// nofollowRejects evaluates a nofollow(A) entry's three variants: the
// forbidden lookahead is tested against the input at the current
// cursor, never consuming it.
func (e *Engine) nofollowRejects(ctx *Context, f *grammar.FilterEntry) (bool, error) {
	switch f.Kind() {
	case grammar.FilterEntryCharset:
		return ctx.cI < ctx.m && f.Charset().Contains(ctx.I[ctx.cI]), nil
	case grammar.FilterEntryLiteral:
		lit := f.Literal()
		if ctx.cI+len(lit) > ctx.m {
			return false, nil
		}
		for i, r := range lit {
			if ctx.I[ctx.cI+i] != r {
				return false, nil
			}
		}
		return true, nil
	case grammar.FilterEntryHead:
		sub := e.MakeContext(ctx.I[ctx.cI:], f.HeadSymbol(), false, true)
		ok, err := e.Parse(sub)
		e.ReleaseContext(sub)
		return ok, err
	default:
		return false, errUnknownFilterTag
	}
}

// rejectRejects evaluates a reject(A) entry's three variants: the
// forbidden match is tested against the exact span [cU, cI) the current
// non-terminal just matched.
func (e *Engine) rejectRejects(ctx *Context, f *grammar.FilterEntry) (bool, error) {
	span := ctx.I[ctx.cU:ctx.cI]
	switch f.Kind() {
	case grammar.FilterEntryCharset:
		return len(span) == 1 && f.Charset().Contains(span[0]), nil
	case grammar.FilterEntryLiteral:
		lit := f.Literal()
		if len(span) != len(lit) {
			return false, nil
		}
		for i, r := range lit {
			if span[i] != r {
				return false, nil
			}
		}
		return true, nil
	case grammar.FilterEntryHead:
		// The character immediately following the span is masked to 0
		// and restored after the sub-parse. Go's length-carrying slices
		// make the mask unnecessary for correctness here: the sub-parse's
		// input is exactly span (length ctx.cI-ctx.cU), so "whole"
		// semantics already stop it at the real boundary without needing
		// a sentinel — the mask is kept anyway to match the input
		// isolation a sub-parse is expected to have.
		var saved rune
		masked := false
		if ctx.cI < len(ctx.I) {
			saved = ctx.I[ctx.cI]
			ctx.I[ctx.cI] = 0
			masked = true
		}
		sub := e.MakeContext(span, f.HeadSymbol(), true, true)
		ok, err := e.Parse(sub)
		e.ReleaseContext(sub)
		if masked {
			ctx.I[ctx.cI] = saved
		}
		return ok, err
	default:
		return false, errUnknownFilterTag
	}
}

// applyPrecedence is a post-pass over the completed forest: for every
// production carrying a declared precedence/associativity, prune
// ambiguous prod-BSR pivots down to the one the declared associativity
// selects. A left-associative production keeps its rightmost (largest)
// pivot — the derivation built by repeatedly recursing into the left
// child — a right-associative one keeps its leftmost (smallest); see
// DESIGN.md for the rationale. An entry's level is not consulted, and an
// entry with no associativity prunes nothing.
func (e *Engine) applyPrecedence(ctx *Context) error {
	for _, head := range e.gram.Productions() {
		for _, pe := range e.gram.PrecedenceEntries(head) {
			if pe.Assoc() == grammar.AssocNone {
				continue
			}
			for key, pivots := range ctx.Y.pivots {
				pk, ok := key.(prodBSRKey)
				if !ok || pk.head != head || pk.index != pe.Index() {
					continue
				}
				if len(pivots) <= 1 {
					continue
				}
				keep := -1
				for j := range pivots {
					switch {
					case keep == -1:
						keep = j
					case pe.Assoc() == grammar.AssocLeft && j > keep:
						keep = j
					case pe.Assoc() == grammar.AssocRight && j < keep:
						keep = j
					}
				}
				for j := range pivots {
					if j != keep {
						delete(pivots, j)
					}
				}
			}
		}
	}
	return nil
}
