package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kaelindev/cnp/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar descriptor path>",
		Short:   "Print a grammar descriptor's productions and labels in readable form",
		Example: `  cnp show grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	desc, err := readDescriptor(args[0])
	if err != nil {
		return fmt.Errorf("cannot read grammar descriptor: %w", err)
	}
	gram, err := buildGrammar(desc)
	if err != nil {
		return fmt.Errorf("cannot build grammar: %w", err)
	}
	writeGrammar(os.Stdout, gram)
	return nil
}

func symName(g *grammar.Grammar, s grammar.Symbol) string {
	if s.IsEOF() {
		return "$"
	}
	name, ok := g.LookupSymbol(s)
	if !ok {
		return "?"
	}
	return name
}

func writeGrammar(w *os.File, g *grammar.Grammar) {
	fmt.Fprintf(w, "# Start\n\n%v\n\n# Productions\n\n", symName(g, g.StartSymbol()))
	for _, head := range g.Productions() {
		for _, body := range g.Bodies(head) {
			var b strings.Builder
			fmt.Fprintf(&b, "%v ->", symName(g, head))
			if body.IsEmptyBody() {
				fmt.Fprintf(&b, " ε")
			}
			for i := 0; i < body.Len(); i++ {
				fmt.Fprintf(&b, " %v", symName(g, body.At(i)))
			}
			fmt.Fprintf(w, "%4v %v\n", body.Index(), b.String())
		}
	}

	fmt.Fprintf(w, "\n# Labels\n\n")
	for _, head := range g.Productions() {
		for _, slot := range g.AllSlots(head) {
			fmt.Fprintf(w, "%v\n", slot.String())
		}
	}

	fmt.Fprintf(w, "\n# Precedence\n\n")
	for _, head := range g.Productions() {
		for _, pe := range g.PrecedenceEntries(head) {
			var assoc string
			switch pe.Assoc() {
			case grammar.AssocLeft:
				assoc = "left"
			case grammar.AssocRight:
				assoc = "right"
			default:
				assoc = "none"
			}
			fmt.Fprintf(w, "%v.%v level=%v assoc=%v\n", symName(g, head), int(pe.Index()), pe.Level(), assoc)
		}
	}
}
