package grammar

// filterEntryKind is the discriminant of the nofollow/reject tagged
// union: a sum type with an explicit tag, not a type hierarchy.
type filterEntryKind int

const (
	filterEntryCharset filterEntryKind = iota
	filterEntryLiteral
	filterEntryHead
)

// filterEntry is the {charset | literal-string | head-idx} tagged value
// attached to a non-terminal via nofollow(A) or reject(A).
type filterEntry struct {
	kind    filterEntryKind
	charset *RuneSet
	literal []rune
	head    symbol
}

// Assoc is the associativity of a precedence-group entry.
type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
)

// precedenceEntry binds one production (by its head and body index, not
// merely its head — see DESIGN.md's resolution of this) to a precedence
// level and associativity.
type precedenceEntry struct {
	head  symbol
	index bodyIndex
	level int
	assoc Assoc
}

// filterTable holds nofollow/reject/precedence data: nofollow and reject
// per head, precedence entries per head (possibly several, one per body
// of that head).
type filterTable struct {
	nofollow   map[symbol]*filterEntry
	reject     map[symbol]*filterEntry
	precedence map[symbol][]precedenceEntry
}

func newFilterTable() *filterTable {
	return &filterTable{
		nofollow:   map[symbol]*filterEntry{},
		reject:     map[symbol]*filterEntry{},
		precedence: map[symbol][]precedenceEntry{},
	}
}

func (f *filterTable) setNofollowCharset(head symbol, rs *RuneSet) {
	f.nofollow[head] = &filterEntry{kind: filterEntryCharset, charset: rs}
}

func (f *filterTable) setNofollowLiteral(head symbol, lit []rune) {
	f.nofollow[head] = &filterEntry{kind: filterEntryLiteral, literal: lit}
}

func (f *filterTable) setNofollowHead(head symbol, other symbol) {
	f.nofollow[head] = &filterEntry{kind: filterEntryHead, head: other}
}

func (f *filterTable) setRejectCharset(head symbol, rs *RuneSet) {
	f.reject[head] = &filterEntry{kind: filterEntryCharset, charset: rs}
}

func (f *filterTable) setRejectLiteral(head symbol, lit []rune) {
	f.reject[head] = &filterEntry{kind: filterEntryLiteral, literal: lit}
}

func (f *filterTable) setRejectHead(head symbol, other symbol) {
	f.reject[head] = &filterEntry{kind: filterEntryHead, head: other}
}

func (f *filterTable) addPrecedence(head symbol, index bodyIndex, level int, assoc Assoc) {
	f.precedence[head] = append(f.precedence[head], precedenceEntry{head: head, index: index, level: level, assoc: assoc})
}
