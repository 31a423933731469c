package scanner

import (
	"fmt"
	"io"

	"github.com/nihei9/tribble/driver"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// LexmachineScanner scans with a DFA compiled by lexmachine.
type LexmachineScanner struct {
	lexer   *lexmachine.Lexer
	entries []*Entry
}

func NewLexmachineScanner(s *Spec) (*LexmachineScanner, error) {
	err := s.validate()
	if err != nil {
		return nil, err
	}

	lexer := lexmachine.NewLexer()
	for i, e := range s.Entries {
		lexer.Add([]byte(e.pattern()), makeToken(i))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}

	return &LexmachineScanner{
		lexer:   lexer,
		entries: s.Entries,
	}, nil
}

// makeToken wraps a match of an entry into a lexmachine token whose type is the index of the entry.
func makeToken(entry int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(entry, string(m.Bytes), m), nil
	}
}

func (s *LexmachineScanner) Scan(src io.Reader) (driver.TokenStream, error) {
	text, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	sc, err := s.lexer.Scanner(text)
	if err != nil {
		return nil, err
	}
	return &lexmachineStream{
		s:    s,
		sc:   sc,
		text: text,
	}, nil
}

type lexmachineStream struct {
	s    *LexmachineScanner
	sc   *lexmachine.Scanner
	text []byte
}

func (l *lexmachineStream) Next() (driver.Token, error) {
	for {
		tok, err, eof := l.sc.Next()
		if err != nil {
			ui, ok := err.(*machines.UnconsumedInput)
			if !ok {
				return nil, err
			}
			// Resume after the unconsumed input so that the stream makes progress.
			next := ui.FailTC
			if next <= ui.StartTC {
				next = ui.StartTC + 1
			}
			l.sc.TC = next
			lexeme := string(l.text[ui.StartTC:next])
			return &token{
				lexeme:  lexeme,
				value:   lexeme,
				invalid: true,
				row:     ui.StartLine,
				col:     ui.StartColumn,
			}, nil
		}
		if eof {
			row, col := endPosition(l.text)
			return &token{
				eof: true,
				row: row,
				col: col,
			}, nil
		}

		t := tok.(*lexmachine.Token)
		e := l.s.entries[t.Type]
		if e.Skip {
			continue
		}
		lexeme := string(t.Lexeme)
		v, err := e.value(lexeme)
		if err != nil {
			return nil, fmt.Errorf("%v:%v: %w", t.StartLine, t.StartColumn, err)
		}
		return &token{
			terminal: e.Terminal,
			lexeme:   lexeme,
			value:    v,
			row:      t.StartLine,
			col:      t.StartColumn,
		}, nil
	}
}

// endPosition returns the position following the last character of a text.
func endPosition(text []byte) (int, int) {
	row, col := 1, 1
	for _, c := range text {
		if c == '\n' {
			row++
			col = 1
			continue
		}
		col++
	}
	return row, col
}
