package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	verr "github.com/nihei9/tribble/error"
	"github.com/nihei9/tribble/grammar"
	spec "github.com/nihei9/tribble/spec/grammar"
	"github.com/nihei9/tribble/spec/grammar/parser"
)

// readRules reads a grammar file. Files named *.yaml or *.yml hold YAML rules; other files hold rules in the
// textual syntax. An empty path or "-" reads the textual syntax from stdin.
func readRules(path string) ([]*grammar.RawRule, error) {
	var src io.Reader
	if path == "" || path == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
		}
		defer f.Close()
		src = f
	}

	var rules []*grammar.RawRule
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		rules, err = parser.ParseYAML(src)
	default:
		rules, err = parser.Parse(src)
	}
	if err != nil {
		return nil, withSource(err, path)
	}
	return rules, nil
}

// withSource attaches a file path to a compile error so that the error quotes the offending line.
func withSource(err error, path string) error {
	var specErr *verr.SpecError
	if !errors.As(err, &specErr) {
		return err
	}
	if path == "" || path == "-" {
		specErr.SourceName = "stdin"
		return specErr
	}
	specErr.SourceName = path
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	default:
		specErr.FilePath = path
	}
	return specErr
}

func grammarName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func compileGrammar(path string) (*grammar.Grammar, error) {
	rules, err := readRules(path)
	if err != nil {
		return nil, err
	}
	g, err := grammar.Compile(rules)
	if err != nil {
		return nil, withSource(err, path)
	}
	return g, nil
}

func buildTable(path string, opts ...grammar.TableOption) (*grammar.ParsingTable, error) {
	g, err := compileGrammar(path)
	if err != nil {
		return nil, err
	}
	t, err := grammar.BuildParsingTable(g, opts...)
	if err != nil {
		return nil, withSource(err, path)
	}
	return t, nil
}

func readCompiledGrammar(path string) (*spec.CompiledGrammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	cgram := &spec.CompiledGrammar{}
	err = json.Unmarshal(data, cgram)
	if err != nil {
		return nil, err
	}
	return cgram, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
