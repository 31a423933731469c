package main

import (
	"encoding/json"
	"fmt"

	"github.com/nihei9/tribble/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
	strict *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar into a portable parsing table",
		Example: `  tribble compile grammar.tribble -o grammar.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.strict = cmd.Flags().Bool("strict", false, "reject shift/reduce conflicts instead of preferring the shift")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	policy := grammar.PreferShift
	if *compileFlags.strict {
		policy = grammar.RejectShiftReduce
	}
	t, err := buildTable(grmPath, grammar.WithConflictPolicy(policy))
	if err != nil {
		return err
	}

	cgram, err := grammar.Export(grammarName(grmPath), t)
	if err != nil {
		return err
	}

	w, err := openOutput(*compileFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write an output file: %w", err)
	}
	defer w.Close()
	b, err := json.Marshal(cgram)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", string(b))

	if len(t.Conflicts) > 0 {
		pterm.Warning.Println(fmt.Sprintf("%v conflicts were resolved by preferring the shift; run `tribble show` for details", len(t.Conflicts)))
	}

	return nil
}
