package grammar

// bodySlice is an immutable view over a contiguous segment of a
// production's body: symbols [start, stop). Equality and hashing depend
// only on the underlying production identity and the (start, stop)
// bounds, never on any lookahead overlay a caller attaches for
// debugging.
type bodySlice struct {
	prod  *production
	start int
	stop  int
}

func sliceOf(prod *production, start int) bodySlice {
	return bodySlice{prod: prod, start: start, stop: prod.length()}
}

// key is the map key used to memoize FIRST-of-slice: it intentionally
// only carries the fields slice identity is defined over.
type sliceKey struct {
	prodID productionID
	start  int
	stop   int
}

func (b bodySlice) key() sliceKey {
	return sliceKey{prodID: b.prod.id, start: b.start, stop: b.stop}
}

func (b bodySlice) isEmpty() bool {
	return b.start >= b.stop
}

func (b bodySlice) symbols() []symbol {
	if b.isEmpty() {
		return nil
	}
	return b.prod.body[b.start:b.stop]
}

// fset pairs a terminal set with a "special" flag: nullable (ε is in
// FIRST) for a FIRST-set, endmarker-reachable for a FOLLOW-set.
type fset struct {
	terms   map[symbol]struct{}
	special bool
}

func newFset() *fset {
	return &fset{terms: map[symbol]struct{}{}}
}

func (f *fset) add(s symbol) bool {
	if _, ok := f.terms[s]; ok {
		return false
	}
	f.terms[s] = struct{}{}
	return true
}

func (f *fset) setSpecial() bool {
	if f.special {
		return false
	}
	f.special = true
	return true
}

// mergeTerms unions target's terminals into f, never propagating
// target's special flag — the caller decides whether special should
// propagate.
func (f *fset) mergeTerms(target *fset) bool {
	if target == nil {
		return false
	}
	changed := false
	for s := range target.terms {
		if f.add(s) {
			changed = true
		}
	}
	return changed
}

func (f *fset) has(s symbol) bool {
	_, ok := f.terms[s]
	return ok
}
