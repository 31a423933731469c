package main

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replFlags = struct {
	lex   *string
	lexer *string
	tree  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar file path>",
		Short:   "Parse lines typed interactively",
		Example: `  tribble repl grammar.tribble --lex lexspec.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	replFlags.lex = cmd.Flags().StringP("lex", "l", "", "lexer spec file path (YAML)")
	replFlags.lexer = cmd.Flags().String("lexer", "maleeni", "lexer generator [maleeni|lexmachine]")
	replFlags.tree = cmd.Flags().Bool("tree", false, "print a concrete syntax tree instead of the value")
	cmd.MarkFlagRequired("lex")
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	gram, err := loadDriverGrammar(args[0])
	if err != nil {
		return err
	}
	scan, err := loadScanner(*replFlags.lex, *replFlags.lexer)
	if err != nil {
		return err
	}

	repl, err := readline.New("tribble> ")
	if err != nil {
		return err
	}
	defer repl.Close()

	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				break
			}
			return err
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		err = parseAndPrint(os.Stdout, gram, scan, strings.NewReader(line), *replFlags.tree)
		if err != nil {
			pterm.Error.Println(err)
		}
	}
	pterm.Info.Println("Good bye!")

	return nil
}
