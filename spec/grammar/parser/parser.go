package parser

import (
	"io"

	verr "github.com/nihei9/tribble/error"
	"github.com/nihei9/tribble/grammar"
)

// Parse reads grammar source text. Each line holds one rule:
//
//	name [type] -> child...
//
// where type is `[]` or an object tag, and each child is an identifier (a non-terminal) or a quoted string (a
// terminal), optionally preceded by a role marker `:`, `[]:` or `key:` and followed by the modifiers `?`, `+`
// and `*`. A role marker must touch the symbol it marks, and a key must touch its colon. `//` starts a comment.
func Parse(src io.Reader) ([]*grammar.RawRule, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.parse()
}

func raiseSyntaxError(err *SyntaxError, pos position) {
	panic(&verr.SpecError{
		Cause: err,
		Child: -1,
		Row:   pos.row,
		Col:   pos.col,
	})
}

func raiseInvalidToken(tok *token) {
	if synErr, ok := tok.err.(*SyntaxError); ok {
		raiseSyntaxError(synErr, tok.pos)
	}
	raiseSyntaxError(synErrInvalidToken, tok.pos)
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (rules []*grammar.RawRule, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			specErr, ok := err.(*verr.SpecError)
			if !ok {
				panic(err)
			}
			rules = nil
			retErr = specErr
		}
	}()

	rules = []*grammar.RawRule{}
	for {
		p.skipNewlines()
		if p.consume(tokenKindEOF) {
			break
		}
		rules = append(rules, p.parseRule())
	}
	return rules, nil
}

func (p *parser) skipNewlines() {
	for p.consume(tokenKindNewline) {
	}
}

func (p *parser) parseRule() *grammar.RawRule {
	if !p.consume(tokenKindID) {
		raiseSyntaxError(synErrNoRuleName, p.peek().pos)
	}
	rule := &grammar.RawRule{
		Name: p.lastTok.text,
		Pos:  toPos(p.lastTok.pos),
	}

	switch {
	case p.consume(tokenKindList):
		rule.Annotation = grammar.Annotation{
			Kind: grammar.AnnotationList,
		}
	case p.consume(tokenKindID):
		rule.Annotation = grammar.Annotation{
			Kind: grammar.AnnotationObject,
			Tag:  p.lastTok.text,
		}
	}

	if !p.consume(tokenKindArrow) {
		raiseSyntaxError(synErrNoArrow, p.peek().pos)
	}

	rule.Children = []*grammar.RawChild{}
	for {
		if p.consume(tokenKindNewline) || p.consume(tokenKindEOF) {
			break
		}
		rule.Children = append(rule.Children, p.parseChild())
	}

	return rule
}

func (p *parser) parseChild() *grammar.RawChild {
	tok := p.peek()
	switch tok.kind {
	case tokenKindColon:
		p.consume(tokenKindColon)
		return grammar.RootOf(p.parseMarkedSymbol(p.lastTok))
	case tokenKindList:
		p.consume(tokenKindList)
		list := p.lastTok
		if !p.consume(tokenKindColon) || !list.adjacent(p.lastTok) {
			raiseSyntaxError(synErrListWithNoColon, list.pos)
		}
		return grammar.ListOf(p.parseMarkedSymbol(p.lastTok))
	case tokenKindID:
		p.consume(tokenKindID)
		id := p.lastTok
		if next := p.peek(); next.kind == tokenKindColon && id.adjacent(next) {
			p.consume(tokenKindColon)
			return grammar.KeyOf(id.text, p.parseMarkedSymbol(p.lastTok))
		}
		return p.parseModifiers(newSymbol(id))
	case tokenKindString:
		p.consume(tokenKindString)
		str := p.lastTok
		if next := p.peek(); next.kind == tokenKindColon && str.adjacent(next) {
			raiseSyntaxError(synErrTerminalAsKey, str.pos)
		}
		return p.parseModifiers(newSymbol(str))
	case tokenKindInvalid:
		raiseInvalidToken(tok)
	}
	raiseSyntaxError(synErrUnexpectedToken, tok.pos)
	return nil
}

// parseMarkedSymbol parses the symbol following a role marker.
func (p *parser) parseMarkedSymbol(marker *token) *grammar.RawChild {
	tok := p.peek()
	if !marker.adjacent(tok) || (tok.kind != tokenKindID && tok.kind != tokenKindString) {
		raiseSyntaxError(synErrRoleWithNoSymbol, marker.pos)
	}
	p.consume(tok.kind)
	return p.parseModifiers(newSymbol(tok))
}

func (p *parser) parseModifiers(c *grammar.RawChild) *grammar.RawChild {
	for {
		switch {
		case p.consume(tokenKindOptional):
			c = grammar.RawModified(grammar.ModifierOptional, c)
		case p.consume(tokenKindOneOrMore):
			c = grammar.RawModified(grammar.ModifierOneOrMore, c)
		case p.consume(tokenKindZeroOrMore):
			c = grammar.RawModified(grammar.ModifierZeroOrMore, c)
		default:
			return c
		}
	}
}

func newSymbol(tok *token) *grammar.RawChild {
	var c *grammar.RawChild
	if tok.kind == tokenKindString {
		c = grammar.RawTerminal(tok.text)
	} else {
		c = grammar.RawNonTerminal(tok.text)
	}
	c.Pos = toPos(tok.pos)
	return c
}

func toPos(pos position) grammar.Position {
	return grammar.Position{
		Row: pos.row,
		Col: pos.col,
	}
}

func (p *parser) peek() *token {
	if p.peekedTok != nil {
		return p.peekedTok
	}
	tok, err := p.lex.next()
	if err != nil {
		panic(&verr.SpecError{
			Cause: err,
			Child: -1,
		})
	}
	p.peekedTok = tok
	return tok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind == tokenKindInvalid {
		raiseInvalidToken(tok)
	}
	if tok.kind != expected {
		return false
	}
	p.peekedTok = nil
	p.lastTok = tok
	return true
}
