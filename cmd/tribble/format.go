package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "format",
		Short:   "Print a grammar after EBNF desugaring, one aligned rule per line",
		Example: `  tribble format grammar.tribble`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runFormat,
	}
	rootCmd.AddCommand(cmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	g, err := compileGrammar(grmPath)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), g.Format())

	return nil
}
