package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kaelindev/cnp/grammar"
)

// grammarDescriptor is the small JSON grammar format cmd/cnp reads: a
// direct, literal description of symbols, productions and filters, with
// no lexer or grammar-source syntax of its own.
type grammarDescriptor struct {
	Start        string           `json:"start"`
	NonTerminals []string         `json:"nonterminals"`
	Terminals    []terminalDesc   `json:"terminals"`
	Productions  []productionDesc `json:"productions"`
	Nofollow     []filterDesc     `json:"nofollow,omitempty"`
	Reject       []filterDesc     `json:"reject,omitempty"`
	Precedence   []precedenceDesc `json:"precedence,omitempty"`
}

type terminalDesc struct {
	Name    string      `json:"name"`
	Literal string      `json:"literal,omitempty"`
	Charset [][2]string `json:"charset,omitempty"`
}

type productionDesc struct {
	Head string   `json:"head"`
	Body []string `json:"body"`
}

type filterDesc struct {
	Head    string      `json:"head"`
	Kind    string      `json:"kind"` // "charset" | "literal" | "head"
	Charset [][2]string `json:"charset,omitempty"`
	Literal string      `json:"literal,omitempty"`
	Ref     string      `json:"ref,omitempty"`
}

type precedenceDesc struct {
	Head  string `json:"head"`
	Index int    `json:"index"`
	Level int    `json:"level"`
	Assoc string `json:"assoc"` // "left" | "right" | "none"
}

func readDescriptor(path string) (*grammarDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	desc := &grammarDescriptor{}
	if err := json.Unmarshal(data, desc); err != nil {
		return nil, fmt.Errorf("cannot parse grammar descriptor: %w", err)
	}
	return desc, nil
}

func charsetOf(pairs [][2]string) (*grammar.RuneSet, error) {
	rs := make([][2]rune, 0, len(pairs))
	for _, p := range pairs {
		lo := []rune(p[0])
		hi := []rune(p[1])
		if len(lo) != 1 || len(hi) != 1 {
			return nil, fmt.Errorf("charset range endpoints must each be a single code point, got %q-%q", p[0], p[1])
		}
		rs = append(rs, [2]rune{lo[0], hi[0]})
	}
	return grammar.NewRuneSet(rs...), nil
}

// buildGrammar translates a grammarDescriptor into a *grammar.Grammar via
// grammar.Builder, resolving every name reference as it goes.
func buildGrammar(desc *grammarDescriptor) (*grammar.Grammar, error) {
	b := grammar.NewBuilder()
	b.DeclareStart(desc.Start)

	sym := map[string]grammar.Symbol{}
	for _, nt := range desc.NonTerminals {
		sym[nt] = b.DeclareNonTerminal(nt)
	}
	if _, ok := sym[desc.Start]; !ok {
		sym[desc.Start] = b.DeclareNonTerminal(desc.Start)
	}
	for _, t := range desc.Terminals {
		switch {
		case t.Literal != "":
			sym[t.Name] = b.DeclareLiteralTerminal(t.Name, t.Literal)
		case len(t.Charset) > 0:
			rs, err := charsetOf(t.Charset)
			if err != nil {
				return nil, fmt.Errorf("terminal %v: %w", t.Name, err)
			}
			sym[t.Name] = b.DeclareCharsetTerminal(t.Name, rs)
		default:
			return nil, fmt.Errorf("terminal %v: must declare either literal or charset", t.Name)
		}
	}

	resolve := func(name string) (grammar.Symbol, error) {
		s, ok := sym[name]
		if !ok {
			return grammar.NilSymbol, fmt.Errorf("undeclared symbol %q", name)
		}
		return s, nil
	}

	prodIndex := map[string][]grammar.BodyIndex{}
	for _, p := range desc.Productions {
		head, err := resolve(p.Head)
		if err != nil {
			return nil, err
		}
		body := make([]grammar.Symbol, len(p.Body))
		for i, name := range p.Body {
			s, err := resolve(name)
			if err != nil {
				return nil, fmt.Errorf("production %v: %w", p.Head, err)
			}
			body[i] = s
		}
		idx := b.AddProduction(head, body)
		prodIndex[p.Head] = append(prodIndex[p.Head], idx)
	}

	applyFilter := func(f filterDesc, setCharset func(grammar.Symbol, *grammar.RuneSet) *grammar.Builder, setLiteral func(grammar.Symbol, string) *grammar.Builder, setHead func(grammar.Symbol, grammar.Symbol) *grammar.Builder) error {
		head, err := resolve(f.Head)
		if err != nil {
			return err
		}
		switch f.Kind {
		case "charset":
			rs, err := charsetOf(f.Charset)
			if err != nil {
				return err
			}
			setCharset(head, rs)
		case "literal":
			setLiteral(head, f.Literal)
		case "head":
			ref, err := resolve(f.Ref)
			if err != nil {
				return err
			}
			setHead(head, ref)
		default:
			return fmt.Errorf("filter on %v: unrecognized kind %q", f.Head, f.Kind)
		}
		return nil
	}

	for _, f := range desc.Nofollow {
		if err := applyFilter(f, b.SetNofollowCharset, b.SetNofollowLiteral, b.SetNofollowHead); err != nil {
			return nil, fmt.Errorf("nofollow: %w", err)
		}
	}
	for _, f := range desc.Reject {
		if err := applyFilter(f, b.SetRejectCharset, b.SetRejectLiteral, b.SetRejectHead); err != nil {
			return nil, fmt.Errorf("reject: %w", err)
		}
	}

	for _, p := range desc.Precedence {
		head, err := resolve(p.Head)
		if err != nil {
			return nil, fmt.Errorf("precedence: %w", err)
		}
		var assoc grammar.Assoc
		switch p.Assoc {
		case "left":
			assoc = grammar.AssocLeft
		case "right":
			assoc = grammar.AssocRight
		case "none", "":
			assoc = grammar.AssocNone
		default:
			return nil, fmt.Errorf("precedence on %v: unrecognized associativity %q", p.Head, p.Assoc)
		}
		b.AddPrecedence(head, grammar.BodyIndex(p.Index), p.Level, assoc)
	}

	return b.Build()
}
