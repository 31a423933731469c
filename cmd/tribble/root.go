package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// traceKeys lists the trace keys of tribble's packages.
var traceKeys = []string{
	"tribble.grammar",
	"tribble.driver",
	"tribble.scanner",
}

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "tribble",
	Short: "Generate LR(0) parsing tables from grammars that describe the values they build",
	Long: `tribble provides the following features:
- Compiles a grammar into a portable parsing table.
- Prints a grammar, its automaton and its conflicts in readable formats.
- Parses a text with a grammar and a lexer spec, printing the value the grammar builds.
  This feature is primarily aimed at debugging the grammar.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := tracing.TraceLevelFromString(*rootFlags.trace)
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
		return nil
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
}

func Execute() error {
	initDisplay()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, pterm.Error.Sprint(err))
		return err
	}
	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
