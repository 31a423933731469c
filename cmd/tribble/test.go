package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/tribble/tester"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	lex   *string
	lexer *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar",
		Example: `  tribble test grammar.tribble test --lex lexspec.yaml`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.lex = cmd.Flags().StringP("lex", "l", "", "lexer spec file path (YAML)")
	testFlags.lexer = cmd.Flags().String("lexer", "maleeni", "lexer generator [maleeni|lexmachine]")
	cmd.MarkFlagRequired("lex")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	gram, err := loadDriverGrammar(args[0])
	if err != nil {
		return err
	}
	scan, err := loadScanner(*testFlags.lex, *testFlags.lexer)
	if err != nil {
		return err
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Grammar: gram,
		Scanner: scan,
		Cases:   cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		if r.Error != nil {
			pterm.Error.Println(r.String())
			testFailed = true
			continue
		}
		pterm.Success.Println(r.String())
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
