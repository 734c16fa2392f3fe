package engine

import "errors"

// Grammar-shape errors are fatal and surface as returned errors rather
// than a panic, except where Go's own runtime would already panic on a
// genuine programmer error (a nil Grammar, for instance). Allocation
// failure in CRF/BSR insertion is not caught: Go's runtime ends the
// process.
var (
	errGrammarNotInitialized = errors.New("engine: grammar has not been initialized")
	errUnknownSlot           = errors.New("engine: slot references an unknown production body")
	errUnknownFilterTag      = errors.New("engine: filter entry has an unrecognized tag")
)
