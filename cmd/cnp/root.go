package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cnp",
	Short: "Parse input against a context-free grammar using Clustered Non-terminal Parsing",
	Long: `cnp runs the Clustered Non-terminal Parsing engine over a JSON grammar
descriptor and a source text, reporting whether the input (the whole input,
unless --whole=false) derives from the grammar's start symbol and, with
--stats, the descriptor, CRF and BSR counters of the parse.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
