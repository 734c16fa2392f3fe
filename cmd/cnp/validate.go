package main

import (
	"fmt"
	"os"

	"github.com/kaelindev/cnp/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "validate <grammar descriptor path>",
		Short:   "Check that a grammar descriptor builds a well-formed grammar",
		Example: `  cnp validate grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runValidate,
	}
	rootCmd.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	desc, err := readDescriptor(args[0])
	if err != nil {
		return fmt.Errorf("cannot read grammar descriptor: %w", err)
	}
	gram, err := buildGrammar(desc)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "grammar is well-formed: %d productions over %d non-terminals\n",
		countBodies(gram), len(gram.Productions()))
	return nil
}

func countBodies(gram *grammar.Grammar) int {
	n := 0
	for _, head := range gram.Productions() {
		n += len(gram.Bodies(head))
	}
	return n
}
