package grammar

import (
	"fmt"
	"sync"
)

// firstTable is the FIRST-set fixed point plus the memoized FIRST of
// arbitrary body slices it is used to compute test_select from. Owned by
// Grammar so the memo survives across parse contexts rather than being
// rebuilt per context; mu guards the memo, which concurrent parses
// sharing the Grammar write to.
type firstTable struct {
	byHead map[symbol]*fset
	memo   map[sliceKey]*fset
	mu     sync.Mutex
}

func computeFirst(prods *productionSet) (*firstTable, error) {
	ft := &firstTable{
		byHead: map[symbol]*fset{},
		memo:   map[sliceKey]*fset{},
	}
	for _, head := range prods.heads {
		ft.byHead[head] = newFset()
	}

	for {
		more := false
		for _, prod := range prods.all() {
			acc := ft.byHead[prod.head]
			changed, err := ft.genInto(acc, prod.body)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return ft, nil
}

// genInto walks body left to right, unioning FIRST(body) into acc:
// union without propagating `special`, stop at the first non-special
// symbol.
func (ft *firstTable) genInto(acc *fset, body []symbol) (bool, error) {
	if len(body) == 0 {
		return acc.setSpecial(), nil
	}
	changed := false
	for _, s := range body {
		if s.isTerminal() {
			if acc.add(s) {
				changed = true
			}
			return changed, nil
		}
		e, ok := ft.byHead[s]
		if !ok {
			return false, fmt.Errorf("no FIRST entry for non-terminal %v", s)
		}
		if acc.mergeTerms(e) {
			changed = true
		}
		if !e.special {
			return changed, nil
		}
	}
	if acc.setSpecial() {
		changed = true
	}
	return changed, nil
}

// of returns FIRST(head) for a non-terminal head.
func (ft *firstTable) of(head symbol) (*fset, error) {
	e, ok := ft.byHead[head]
	if !ok {
		return nil, fmt.Errorf("no FIRST entry for symbol %v", head)
	}
	return e, nil
}

// ofSlice computes FIRST(beta) for an arbitrary body slice, memoized by
// the slice's identity-only key.
func (ft *firstTable) ofSlice(b bodySlice) (*fset, error) {
	key := b.key()
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if e, ok := ft.memo[key]; ok {
		return e, nil
	}
	acc := newFset()
	if _, err := ft.genInto(acc, b.symbols()); err != nil {
		return nil, err
	}
	ft.memo[key] = acc
	return acc, nil
}
