package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/nihei9/tribble/driver"
	"github.com/nihei9/tribble/scanner"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	lex    *string
	lexer  *string
	source *string
	tree   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Parse a text stream and print the value the grammar builds",
		Example: `  cat src | tribble parse grammar.tribble --lex lexspec.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.lex = cmd.Flags().StringP("lex", "l", "", "lexer spec file path (YAML)")
	parseFlags.lexer = cmd.Flags().String("lexer", "maleeni", "lexer generator [maleeni|lexmachine]")
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.tree = cmd.Flags().Bool("tree", false, "print a concrete syntax tree instead of the value")
	cmd.MarkFlagRequired("lex")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v != nil {
			err, ok := v.(error)
			if !ok {
				err = fmt.Errorf("an unexpected error occurred: %v", v)
			}
			fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
			retErr = err
		}
	}()

	gram, err := loadDriverGrammar(args[0])
	if err != nil {
		return err
	}
	scan, err := loadScanner(*parseFlags.lex, *parseFlags.lexer)
	if err != nil {
		return err
	}

	src := io.Reader(os.Stdin)
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("Cannot open the source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}

	return parseAndPrint(os.Stdout, gram, scan, src, *parseFlags.tree)
}

// loadDriverGrammar reads either a compiled grammar (*.json) or a grammar source.
func loadDriverGrammar(path string) (driver.Grammar, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		cgram, err := readCompiledGrammar(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot read a compiled grammar: %w", err)
		}
		return driver.NewGrammar(cgram)
	}
	t, err := buildTable(path)
	if err != nil {
		return nil, err
	}
	return driver.NewTableGrammar(t), nil
}

func loadScanner(path string, engine string) (scanner.Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the lexer spec %s: %w", path, err)
	}
	defer f.Close()
	s, err := scanner.LoadSpecYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	switch engine {
	case "maleeni":
		return scanner.NewMaleeniScanner(s)
	case "lexmachine":
		return scanner.NewLexmachineScanner(s)
	}
	return nil, fmt.Errorf("unknown lexer generator: %v", engine)
}

func parseAndPrint(w io.Writer, gram driver.Grammar, scan scanner.Scanner, src io.Reader, tree bool) error {
	var opts []driver.ParserOption
	var treeAct *driver.SyntaxTreeActionSet
	if tree {
		treeAct = driver.NewSyntaxTreeActionSet()
		opts = append(opts, driver.SemanticAction(treeAct))
	}
	p, err := driver.NewParser(gram, opts...)
	if err != nil {
		return err
	}
	toks, err := scan.Scan(src)
	if err != nil {
		return err
	}

	v, err := driver.Parse(p, toks)
	if err != nil {
		return err
	}

	if tree {
		driver.PrintTree(w, treeAct.CST())
		return nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", string(b))
	return nil
}
