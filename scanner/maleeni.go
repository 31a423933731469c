package scanner

import (
	"errors"
	"fmt"
	"io"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/nihei9/tribble/driver"
)

// MaleeniScanner scans with a DFA compiled by maleeni.
type MaleeniScanner struct {
	spec    *mlspec.CompiledLexSpec
	entries []*Entry

	// kindToEntry maps a maleeni kind ID to the index of its entry. The nil kind maps to -1.
	kindToEntry []int
}

func NewMaleeniScanner(s *Spec) (*MaleeniScanner, error) {
	err := s.validate()
	if err != nil {
		return nil, err
	}

	entries := make([]*mlspec.LexEntry, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(kindName(i)),
			Pattern: mlspec.LexPattern(e.pattern()),
		}
	}
	clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Entries: entries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			for i, cErr := range cErrs {
				if i > 0 {
					fmt.Fprintf(&b, "\n")
				}
				writeCompileError(&b, s, cErr)
			}
			return nil, errors.New(b.String())
		}
		return nil, err
	}

	kindToEntry := make([]int, len(clspec.KindNames))
	for id, k := range clspec.KindNames {
		kindToEntry[id] = -1
		if k == mlspec.LexKindNameNil {
			continue
		}
		var i int
		_, err := fmt.Sscanf(k.String(), "t%d", &i)
		if err != nil {
			return nil, fmt.Errorf("unexpected kind name: %v", k)
		}
		kindToEntry[id] = i
	}

	tracer().Debugf("maleeni compiled %v entries into %v kinds", len(s.Entries), len(clspec.KindNames))

	return &MaleeniScanner{
		spec:        clspec,
		entries:     s.Entries,
		kindToEntry: kindToEntry,
	}, nil
}

func kindName(entry int) string {
	return fmt.Sprintf("t%v", entry)
}

func writeCompileError(w io.Writer, s *Spec, cErr *mlcompiler.CompileError) {
	name := cErr.Kind.String()
	var i int
	if _, err := fmt.Sscanf(name, "t%d", &i); err == nil && i < len(s.Entries) {
		name = s.Entries[i].Terminal
	}
	fmt.Fprintf(w, "%v: %v", name, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

func (s *MaleeniScanner) Scan(src io.Reader) (driver.TokenStream, error) {
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(s.spec), src)
	if err != nil {
		return nil, err
	}
	return &maleeniStream{
		s:   s,
		lex: lex,
	}, nil
}

type maleeniStream struct {
	s   *MaleeniScanner
	lex *mldriver.Lexer
}

func (l *maleeniStream) Next() (driver.Token, error) {
	for {
		tok, err := l.lex.Next()
		if err != nil {
			return nil, err
		}
		row, col := tok.Row+1, tok.Col+1
		if tok.EOF {
			return &token{
				eof: true,
				row: row,
				col: col,
			}, nil
		}
		lexeme := string(tok.Lexeme)
		if tok.Invalid {
			return &token{
				lexeme:  lexeme,
				value:   lexeme,
				invalid: true,
				row:     row,
				col:     col,
			}, nil
		}

		e := l.s.entries[l.s.kindToEntry[tok.KindID]]
		if e.Skip {
			continue
		}
		v, err := e.value(lexeme)
		if err != nil {
			return nil, fmt.Errorf("%v:%v: %w", row, col, err)
		}
		return &token{
			terminal: e.Terminal,
			lexeme:   lexeme,
			value:    v,
			row:      row,
			col:      col,
		}, nil
	}
}
