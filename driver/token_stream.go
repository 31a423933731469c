package driver

// Token is a terminal produced by a lexer together with the value the parser passes to reductions.
type Token interface {
	Terminal() string
	Value() interface{}
	EOF() bool
	Invalid() bool
	Position() (int, int)
}

type TokenStream interface {
	Next() (Token, error)
}

// Parse feeds a parser with every token of a stream and finishes the parse at the end of the stream.
func Parse(p *Parser, toks TokenStream) (interface{}, error) {
	for {
		tok, err := toks.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			return p.Finish()
		}
		row, col := tok.Position()
		if tok.Invalid() {
			return nil, p.fail(&SyntaxError{
				Cause:             ErrInvalidToken,
				Terminal:          tok.Terminal(),
				Row:               row,
				Col:               col,
				ExpectedTerminals: p.gram.Expected(p.state),
			})
		}
		err = p.feed(tok.Terminal(), tok.Value(), row, col)
		if err != nil {
			return nil, err
		}
	}
}
