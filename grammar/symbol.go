package grammar

import (
	"fmt"
	"sort"
)

// symbolKind distinguishes terminal from non-terminal symbols.
type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (k symbolKind) String() string {
	return string(k)
}

// symbolNum is the dense, per-kind number packed into a symbol value.
type symbolNum uint16

func (n symbolNum) Int() int {
	return int(n)
}

// symbol is an interned reference to a terminal or non-terminal. Equality
// is by value (bit pattern), never by the text a caller registered it
// under.
type symbol uint16

const (
	maskKind     = uint16(0x8000) // 1: terminal, 0: non-terminal
	maskStartEOF = uint16(0x4000) // 1: the start symbol or the EOF terminal
	maskNum      = uint16(0x3fff)

	numStart = symbolNum(0x0001)
	numEOF   = symbolNum(0x0001)

	symbolNil   = symbol(0)
	symbolStart = symbol(maskStartEOF | uint16(numStart))
	symbolEOF   = symbol(maskKind | maskStartEOF | uint16(numEOF))

	nonTerminalNumMin = symbolNum(2) // 1 is reserved for the start symbol
	terminalNumMin    = symbolNum(2) // 1 is reserved for EOF
	symbolNumMax      = symbolNum(maskNum)
)

func newSymbol(kind symbolKind, isStart bool, num symbolNum) (symbol, error) {
	if num > symbolNumMax {
		return symbolNil, fmt.Errorf("symbol number exceeds the limit: limit %v, got %v", symbolNumMax, num)
	}
	if kind == symbolKindTerminal && isStart {
		return symbolNil, fmt.Errorf("the start symbol must be a non-terminal")
	}
	var bits uint16
	if kind == symbolKindTerminal {
		bits |= maskKind
	}
	if isStart {
		bits |= maskStartEOF
	}
	return symbol(bits | uint16(num)), nil
}

func (s symbol) describe() (kind symbolKind, isStart, isEOF bool, num symbolNum) {
	kind = symbolKindNonTerminal
	if uint16(s)&maskKind != 0 {
		kind = symbolKindTerminal
	}
	if uint16(s)&maskStartEOF != 0 {
		if kind == symbolKindNonTerminal {
			isStart = true
		} else {
			isEOF = true
		}
	}
	num = symbolNum(uint16(s) & maskNum)
	return
}

func (s symbol) num() symbolNum {
	_, _, _, n := s.describe()
	return n
}

func (s symbol) isNil() bool {
	return s.num() == 0
}

func (s symbol) isStart() bool {
	_, isStart, _, _ := s.describe()
	return !s.isNil() && isStart
}

func (s symbol) isEOF() bool {
	_, _, isEOF, _ := s.describe()
	return !s.isNil() && isEOF
}

func (s symbol) isNonTerminal() bool {
	kind, _, _, _ := s.describe()
	return !s.isNil() && kind == symbolKindNonTerminal
}

func (s symbol) isTerminal() bool {
	return !s.isNil() && !s.isNonTerminal()
}

func (s symbol) String() string {
	kind, isStart, isEOF, num := s.describe()
	var prefix string
	switch {
	case isStart:
		prefix = "S"
	case isEOF:
		prefix = "$"
	case kind == symbolKindNonTerminal:
		prefix = "N"
	default:
		prefix = "T"
	}
	return fmt.Sprintf("%v%v", prefix, num)
}

// terminalKind distinguishes the two ways a terminal symbol can match
// input: a single code-point drawn from a charset, or a fixed literal
// code-point sequence.
type terminalKind int

const (
	terminalKindCharset terminalKind = iota
	terminalKindLiteral
)

// terminalDef is the per-terminal-symbol matching rule. There is no
// lexical front end producing these from grammar source text; callers
// build terminalDefs directly, or via the JSON descriptor read by
// cmd/cnp.
type terminalDef struct {
	kind    terminalKind
	charset *RuneSet
	literal []rune
}

func (t *terminalDef) width() int {
	if t == nil {
		return 0
	}
	if t.kind == terminalKindCharset {
		return 1
	}
	return len(t.literal)
}

// matchAt reports whether t matches the input starting at pos, returning
// the number of code-points consumed (0 on mismatch).
func (t *terminalDef) matchAt(in []rune, pos int) int {
	if t == nil || pos < 0 || pos > len(in) {
		return 0
	}
	switch t.kind {
	case terminalKindCharset:
		if pos >= len(in) {
			return 0
		}
		if t.charset.Contains(in[pos]) {
			return 1
		}
		return 0
	case terminalKindLiteral:
		if pos+len(t.literal) > len(in) {
			return 0
		}
		for i, r := range t.literal {
			if in[pos+i] != r {
				return 0
			}
		}
		return len(t.literal)
	}
	return 0
}

// symbolTable interns symbol<->text mappings and hands out fresh numbers.
// Split into a writer (build time) and a reader (query time) so a
// finalized Grammar cannot be mutated through a reader handle.
type symbolTable struct {
	text2Sym   map[string]symbol
	sym2Text   map[symbol]string
	termDefs   map[symbol]*terminalDef
	nonTermNum symbolNum
	termNum    symbolNum
}

type symbolTableWriter struct{ *symbolTable }
type symbolTableReader struct{ *symbolTable }

func newSymbolTable() *symbolTable {
	return &symbolTable{
		text2Sym: map[string]symbol{
			"<eof>": symbolEOF,
		},
		sym2Text: map[symbol]string{
			symbolEOF: "<eof>",
		},
		termDefs:   map[symbol]*terminalDef{},
		nonTermNum: nonTerminalNumMin,
		termNum:    terminalNumMin,
	}
}

func (t *symbolTable) writer() *symbolTableWriter { return &symbolTableWriter{t} }
func (t *symbolTable) reader() *symbolTableReader { return &symbolTableReader{t} }

func (w *symbolTableWriter) registerStart(text string) symbol {
	w.text2Sym[text] = symbolStart
	w.sym2Text[symbolStart] = text
	return symbolStart
}

func (w *symbolTableWriter) registerNonTerminal(text string) (symbol, error) {
	if s, ok := w.text2Sym[text]; ok {
		return s, nil
	}
	s, err := newSymbol(symbolKindNonTerminal, false, w.nonTermNum)
	if err != nil {
		return symbolNil, err
	}
	w.nonTermNum++
	w.text2Sym[text] = s
	w.sym2Text[s] = text
	return s, nil
}

func (w *symbolTableWriter) registerTerminal(text string, def *terminalDef) (symbol, error) {
	if s, ok := w.text2Sym[text]; ok {
		return s, nil
	}
	s, err := newSymbol(symbolKindTerminal, false, w.termNum)
	if err != nil {
		return symbolNil, err
	}
	w.termNum++
	w.text2Sym[text] = s
	w.sym2Text[s] = text
	w.termDefs[s] = def
	return s, nil
}

func (r *symbolTableReader) toSymbol(text string) (symbol, bool) {
	s, ok := r.text2Sym[text]
	return s, ok
}

func (r *symbolTableReader) toText(s symbol) (string, bool) {
	t, ok := r.sym2Text[s]
	return t, ok
}

func (r *symbolTableReader) terminalDef(s symbol) *terminalDef {
	return r.termDefs[s]
}

func (r *symbolTableReader) terminalSymbols() []symbol {
	syms := make([]symbol, 0, len(r.termDefs))
	for s := range r.sym2Text {
		if s.isTerminal() && !s.isNil() {
			syms = append(syms, s)
		}
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

func (r *symbolTableReader) nonTerminalSymbols() []symbol {
	syms := make([]symbol, 0, r.nonTermNum.Int())
	for s := range r.sym2Text {
		if s.isNonTerminal() && !s.isNil() {
			syms = append(syms, s)
		}
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}
