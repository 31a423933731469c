package main

import (
	"github.com/nihei9/tribble/grammar"
	"github.com/spf13/cobra"
)

var describeFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "describe",
		Short:   "Write the LR(0) automaton of a grammar in the GraphViz dot language",
		Example: `  tribble describe grammar.tribble -o grammar.dot && dot -Tsvg grammar.dot > grammar.svg`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runDescribe,
	}
	describeFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	t, err := buildTable(grmPath)
	if err != nil {
		return err
	}

	w, err := openOutput(*describeFlags.output)
	if err != nil {
		return err
	}
	defer w.Close()

	return grammar.WriteGraphViz(w, t)
}
