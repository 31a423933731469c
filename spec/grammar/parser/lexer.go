package parser

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokenKind string

const (
	tokenKindID         = tokenKind("identifier")
	tokenKindString     = tokenKind("string")
	tokenKindArrow      = tokenKind("->")
	tokenKindList       = tokenKind("[]")
	tokenKindColon      = tokenKind(":")
	tokenKindOptional   = tokenKind("?")
	tokenKindOneOrMore  = tokenKind("+")
	tokenKindZeroOrMore = tokenKind("*")
	tokenKindNewline    = tokenKind("newline")
	tokenKindEOF        = tokenKind("eof")
	tokenKindInvalid    = tokenKind("invalid")
)

// tokenKinds is indexed by the token type lexmachine reports.
var tokenKinds = []tokenKind{
	tokenKindID,
	tokenKindString,
	tokenKindArrow,
	tokenKindList,
	tokenKindColon,
	tokenKindOptional,
	tokenKindOneOrMore,
	tokenKindZeroOrMore,
	tokenKindNewline,
}

type position struct {
	row int
	col int
}

type token struct {
	kind tokenKind
	text string
	pos  position

	// from and to are byte offsets of the lexeme.
	from int
	to   int

	// err explains an invalid token.
	err error
}

// adjacent reports whether tok starts exactly where t ends.
func (t *token) adjacent(tok *token) bool {
	return t.to == tok.from
}

var (
	metaLexer    *lexmachine.Lexer
	metaLexerErr error
	metaLexOnce  sync.Once
)

func compileMetaLexer() (*lexmachine.Lexer, error) {
	metaLexOnce.Do(func() {
		lex := lexmachine.NewLexer()
		lex.Add([]byte(`//[^\n]*`), skip)
		lex.Add([]byte(`( |\t|\r)+`), skip)
		lex.Add([]byte(`\n`), makeToken(tokenKindNewline))
		lex.Add([]byte(`\-\>`), makeToken(tokenKindArrow))
		lex.Add([]byte(`\[\]`), makeToken(tokenKindList))
		lex.Add([]byte(`:`), makeToken(tokenKindColon))
		lex.Add([]byte(`\?`), makeToken(tokenKindOptional))
		lex.Add([]byte(`\+`), makeToken(tokenKindOneOrMore))
		lex.Add([]byte(`\*`), makeToken(tokenKindZeroOrMore))
		lex.Add([]byte(`\"([^"\\\n]|\\\\|\\\")*\"`), makeToken(tokenKindString))
		lex.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_|-)*`), makeToken(tokenKindID))
		metaLexerErr = lex.Compile()
		if metaLexerErr == nil {
			metaLexer = lex
		}
	})
	return metaLexer, metaLexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(kind tokenKind) lexmachine.Action {
	id := -1
	for i, k := range tokenKinds {
		if k == kind {
			id = i
			break
		}
	}
	if id < 0 {
		panic(fmt.Errorf("unknown token kind: %v", kind))
	}
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

type lexer struct {
	s   *lexmachine.Scanner
	src []byte
	eof bool
}

func newLexer(src io.Reader) (*lexer, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	lex, err := compileMetaLexer()
	if err != nil {
		return nil, err
	}
	s, err := lex.Scanner(b)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s:   s,
		src: b,
	}, nil
}

func (l *lexer) next() (*token, error) {
	if l.eof {
		return l.eofToken(), nil
	}

	tok, err, eof := l.s.Next()
	if err != nil {
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			l.s.TC = ui.FailTC
			return &token{
				kind: tokenKindInvalid,
				text: string(l.src[ui.StartTC:ui.FailTC]),
				pos: position{
					row: ui.StartLine,
					col: ui.StartColumn,
				},
				from: ui.StartTC,
				to:   ui.FailTC,
				err:  synErrInvalidToken,
			}, nil
		}
		return nil, err
	}
	if eof {
		l.eof = true
		return l.eofToken(), nil
	}

	t := tok.(*lexmachine.Token)
	kind := tokenKinds[t.Type]
	text := string(t.Lexeme)
	if kind == tokenKindString {
		text, err = unquote(text)
		if err != nil {
			kind = tokenKindInvalid
		}
	}
	return &token{
		kind: kind,
		text: text,
		pos: position{
			row: t.StartLine,
			col: t.StartColumn,
		},
		from: t.TC,
		to:   t.TC + len(t.Lexeme),
		err:  err,
	}, nil
}

func (l *lexer) eofToken() *token {
	row := strings.Count(string(l.src), "\n") + 1
	col := len(l.src) - strings.LastIndex(string(l.src), "\n")
	return &token{
		kind: tokenKindEOF,
		pos: position{
			row: row,
			col: col,
		},
		from: len(l.src),
		to:   len(l.src),
	}
}

// unquote strips the quotes of a string literal and resolves the escape sequences \" and \\.
func unquote(lit string) (string, error) {
	body := lit[1 : len(lit)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", synErrIncompletedEscSeq
		}
		switch body[i] {
		case '\\', '"':
			b.WriteByte(body[i])
		default:
			return "", synErrInvalidEscSeq
		}
	}
	if b.Len() == 0 {
		return "", synErrEmptyString
	}
	return b.String(), nil
}
