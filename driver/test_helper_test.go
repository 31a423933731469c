package driver

import (
	"strings"
	"testing"

	"github.com/nihei9/tribble/grammar"
	"github.com/nihei9/tribble/spec/grammar/parser"
)

type testToken struct {
	terminal string
	value    interface{}
	row      int
	col      int
	eof      bool
	invalid  bool
}

func (t *testToken) Terminal() string {
	return t.terminal
}

func (t *testToken) Value() interface{} {
	return t.value
}

func (t *testToken) EOF() bool {
	return t.eof
}

func (t *testToken) Invalid() bool {
	return t.invalid
}

func (t *testToken) Position() (int, int) {
	return t.row, t.col
}

type testTokenStream struct {
	toks []*testToken
	next int
}

// newTestTokenStream splits src on spaces. Each word is a terminal carrying itself as its value and
// positioned at its 1-based column on row 1; words consisting of digits become `num` terminals.
func newTestTokenStream(src string) *testTokenStream {
	var toks []*testToken
	col := 1
	for _, word := range strings.Split(src, " ") {
		if word == "" {
			col++
			continue
		}
		tok := &testToken{
			terminal: word,
			value:    word,
			row:      1,
			col:      col,
		}
		if strings.Trim(word, "0123456789") == "" {
			tok.terminal = "num"
		}
		toks = append(toks, tok)
		col += len(word) + 1
	}
	return &testTokenStream{
		toks: toks,
	}
}

func (s *testTokenStream) Next() (Token, error) {
	if s.next >= len(s.toks) {
		return &testToken{
			eof: true,
		}, nil
	}
	tok := s.toks[s.next]
	s.next++
	return tok, nil
}

func testTable(t *testing.T, src string) *grammar.ParsingTable {
	t.Helper()

	rules, err := parser.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse the grammar: %v", err)
	}
	g, err := grammar.Compile(rules)
	if err != nil {
		t.Fatalf("failed to compile the grammar: %v", err)
	}
	tab, err := grammar.BuildParsingTable(g)
	if err != nil {
		t.Fatalf("failed to build a parsing table: %v", err)
	}
	return tab
}

func testParse(t *testing.T, gram Grammar, src string, opts ...ParserOption) (interface{}, error) {
	t.Helper()

	p, err := NewParser(gram, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return Parse(p, newTestTokenStream(src))
}
