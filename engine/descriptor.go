// Package engine implements a Clustered Non-terminal Parsing runtime: the
// Call Return Forest, the descriptor worklist, the BSR forest, the
// engine driver (handleLabel/call/return_/bsrAdd/descriptorAdd), and the
// filter evaluator. It is driven by an immutable *grammar.Grammar built
// once and shared across contexts.
//
// Call/return materialization here runs off a worklist and a dedup set,
// the shape a worklist-driven automaton construction takes when the
// underlying graph isn't known up front — as opposed to a table-driven
// parser, which resolves call/return through static shift/reduce lookups
// instead.
package engine

import "github.com/kaelindev/cnp/grammar"

// Descriptor is the (L, k, j) triple describing a unit of parsing work:
// slot L, call-return left extent k, current input cursor j.
type Descriptor struct {
	L grammar.Slot
	K int
	J int
}

// worklist is the descriptor worklist R, paired with its owning dedup
// set U so a descriptor already scheduled is never scheduled twice.
// R is processed FIFO (breadth-first); a LIFO discipline would also be
// legal but is not used here.
type worklist struct {
	r     []Descriptor
	u     map[Descriptor]struct{}
	head  int
}

func newWorklist() *worklist {
	return &worklist{u: map[Descriptor]struct{}{}}
}

// add canonicalizes d into U; if it was not already present, it is also
// appended to R.
func (w *worklist) add(d Descriptor) bool {
	if _, ok := w.u[d]; ok {
		return false
	}
	w.u[d] = struct{}{}
	w.r = append(w.r, d)
	return true
}

func (w *worklist) empty() bool {
	return w.head >= len(w.r)
}

// pop dequeues the next descriptor to process. Callers must check empty
// first.
func (w *worklist) pop() Descriptor {
	d := w.r[w.head]
	w.head++
	return d
}

// pending reports |R| (descriptors not yet dequeued). |R| <= |U| always
// holds, since every descriptor in R was first added to U.
func (w *worklist) pending() int {
	return len(w.r) - w.head
}

func (w *worklist) known() int {
	return len(w.u)
}
