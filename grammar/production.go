package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// productionID content-addresses a body: two bodies with the same head
// and the same symbol sequence collapse to the same production.
type productionID [32]byte

func (id productionID) String() string {
	return hex.EncodeToString(id[:])
}

func genProductionID(lhs symbol, rhs []symbol) productionID {
	seq := lhs.bytes()
	for _, s := range rhs {
		seq = append(seq, s.bytes()...)
	}
	return sha256.Sum256(seq)
}

func (s symbol) bytes() []byte {
	return []byte{byte(uint16(s) >> 8), byte(uint16(s))}
}

// bodyIndex is the insertion-ordered position of a body within its
// head's production set. Slot identity depends on this order, so it
// must be stable once assigned.
type bodyIndex int

// production is one body of a non-terminal: an ordered, possibly empty
// sequence of symbols.
type production struct {
	id    productionID
	head  symbol
	index bodyIndex
	body  []symbol
}

func newProduction(head symbol, body []symbol) (*production, error) {
	if head.isNil() {
		return nil, fmt.Errorf("production head must not be nil")
	}
	for _, s := range body {
		if s.isNil() {
			return nil, fmt.Errorf("production body must not contain a nil symbol: head %v", head)
		}
	}
	return &production{
		id:   genProductionID(head, body),
		head: head,
		body: body,
	}, nil
}

func (p *production) isEmpty() bool { return len(p.body) == 0 }
func (p *production) length() int   { return len(p.body) }

// at returns the symbol at dot, or symbolNil if dot is at or past the end.
func (p *production) at(dot int) symbol {
	if dot < 0 || dot >= len(p.body) {
		return symbolNil
	}
	return p.body[dot]
}

// productionSet holds, per head, the insertion-ordered bodies: a mapping
// from head to the ordered set of bodies declared for it.
type productionSet struct {
	byHead map[symbol][]*production
	byID   map[productionID]*production
	heads  []symbol // insertion order of first-seen heads
}

func newProductionSet() *productionSet {
	return &productionSet{
		byHead: map[symbol][]*production{},
		byID:   map[productionID]*production{},
	}
}

// append inserts prod, assigning it the next bodyIndex for its head.
// Appending a body already known for its head (same id) is a no-op, to
// make grammar construction idempotent under repeated declarations.
func (ps *productionSet) append(prod *production) *production {
	if existing, ok := ps.byID[prod.id]; ok {
		return existing
	}
	if _, ok := ps.byHead[prod.head]; !ok {
		ps.heads = append(ps.heads, prod.head)
	}
	prod.index = bodyIndex(len(ps.byHead[prod.head]))
	ps.byHead[prod.head] = append(ps.byHead[prod.head], prod)
	ps.byID[prod.id] = prod
	return prod
}

func (ps *productionSet) bodies(head symbol) []*production {
	return ps.byHead[head]
}

func (ps *productionSet) body(head symbol, idx bodyIndex) (*production, bool) {
	bs := ps.byHead[head]
	if idx < 0 || int(idx) >= len(bs) {
		return nil, false
	}
	return bs[idx], true
}

func (ps *productionSet) findByID(id productionID) (*production, bool) {
	p, ok := ps.byID[id]
	return p, ok
}

// all returns every production across every head, in head-then-body
// insertion order — used by the FIRST/FOLLOW fixed-point, which needs a
// stable iteration order only for reproducible diagnostics, not for
// correctness.
func (ps *productionSet) all() []*production {
	var out []*production
	for _, h := range ps.heads {
		out = append(out, ps.byHead[h]...)
	}
	return out
}
