package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kaelindev/cnp/engine"
	cnperror "github.com/kaelindev/cnp/error"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
	whole  *bool
	stats  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar descriptor path>",
		Short:   "Parse a text stream against a JSON grammar descriptor",
		Example: `  cat src | cnp parse grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.whole = cmd.Flags().Bool("whole", true, "require the entire input to be consumed")
	parseFlags.stats = cmd.Flags().Bool("stats", false, "print descriptor/CRF/BSR instrumentation counters")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	desc, err := readDescriptor(args[0])
	if err != nil {
		return fmt.Errorf("cannot read grammar descriptor: %w", err)
	}
	gram, err := buildGrammar(desc)
	if err != nil {
		return fmt.Errorf("cannot build grammar: %w", err)
	}

	src := os.Stdin
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open source file %v: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}
	raw, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("cannot read source: %w", err)
	}
	in := []rune(string(raw))

	e := engine.Allocate()
	if err := e.Initialize(gram); err != nil {
		return err
	}
	defer e.Release()

	ctx := e.MakeContext(in, gram.StartSymbol(), *parseFlags.whole, false)
	defer e.ReleaseContext(ctx)

	ok, err := e.Parse(ctx)
	if err != nil {
		return &cnperror.ParseError{Cause: err, Pos: ctx.FurthestPos()}
	}
	if !ok {
		return &cnperror.ParseError{
			Cause: fmt.Errorf("no derivation of the start symbol covers the input"),
			Pos:   ctx.FurthestPos(),
		}
	}

	fmt.Fprintf(os.Stdout, "parse succeeded (%d code points)\n", len(in))
	if *parseFlags.stats {
		s := ctx.Stats
		fmt.Fprintf(os.Stdout, "descriptors processed: %d\n", s.DescriptorsProcessed)
		fmt.Fprintf(os.Stdout, "cluster nodes created: %d\n", s.ClusterNodesCreated)
		fmt.Fprintf(os.Stdout, "label nodes created:   %d\n", s.LabelNodesCreated)
		fmt.Fprintf(os.Stdout, "BSR keys inserted:      %d\n", s.BSRKeysInserted)
	}
	return nil
}
