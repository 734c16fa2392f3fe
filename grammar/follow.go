package grammar

import "fmt"

// followTable is the FOLLOW-set fixed point, computed using the
// slice-based FIRST-of-continuation (bodySlice/firstTable.ofSlice)
// instead of a single-symbol lookahead.
type followTable struct {
	byHead map[symbol]*fset
}

func computeFollow(prods *productionSet, start symbol, ft *firstTable) (*followTable, error) {
	flw := &followTable{byHead: map[symbol]*fset{}}
	for _, head := range prods.heads {
		flw.byHead[head] = newFset()
	}
	if _, ok := flw.byHead[start]; !ok {
		flw.byHead[start] = newFset()
	}
	flw.byHead[start].setSpecial() // FOLLOW(start) always contains the endmarker

	for {
		more := false
		for _, prod := range prods.all() {
			for i, s := range prod.body {
				if !s.isNonTerminal() {
					continue
				}
				acc, ok := flw.byHead[s]
				if !ok {
					return nil, fmt.Errorf("no FOLLOW entry for non-terminal %v", s)
				}
				beta := bodySlice{prod: prod, start: i + 1, stop: prod.length()}
				fb, err := ft.ofSlice(beta)
				if err != nil {
					return nil, err
				}
				if acc.mergeTerms(fb) {
					more = true
				}
				if fb.special {
					fh, ok := flw.byHead[prod.head]
					if !ok {
						return nil, fmt.Errorf("no FOLLOW entry for head %v", prod.head)
					}
					if acc.mergeTerms(fh) {
						more = true
					}
					if fh.special && acc.setSpecial() {
						more = true
					}
				}
			}
		}
		if !more {
			break
		}
	}
	return flw, nil
}

func (flw *followTable) of(head symbol) (*fset, error) {
	e, ok := flw.byHead[head]
	if !ok {
		return nil, fmt.Errorf("no FOLLOW entry for symbol %v", head)
	}
	return e, nil
}
