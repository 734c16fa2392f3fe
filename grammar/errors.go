package grammar

import "errors"

// Grammar-shape errors are fatal programming errors: they indicate the
// caller (normally a meta-grammar front end, out of scope here) handed
// the store an inconsistent grammar.
var (
	errNoStartSymbol      = errors.New("grammar has no start symbol")
	errNoProduction       = errors.New("grammar needs at least one production")
	errUndefinedSymbol    = errors.New("undefined symbol")
	errUnknownSymbolIndex = errors.New("unknown symbol index")
	errDanglingBodyRef    = errors.New("production body references an undeclared symbol")
	errDuplicateSymbol    = errors.New("duplicate symbol name")
	errUnknownFilterTag   = errors.New("unknown filter tag")
	errAlreadyFinalized   = errors.New("grammar is already finalized")
	errNotFinalized       = errors.New("grammar has not been finalized")
)
