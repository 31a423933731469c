package scanner

import (
	"io"

	"github.com/nihei9/tribble/driver"
)

// Scanner makes token streams over sources.
type Scanner interface {
	Scan(src io.Reader) (driver.TokenStream, error)
}

var (
	_ Scanner = &MaleeniScanner{}
	_ Scanner = &LexmachineScanner{}
)

var _ driver.Token = &token{}

type token struct {
	terminal string
	lexeme   string
	value    interface{}
	eof      bool
	invalid  bool
	row      int
	col      int
}

func (t *token) Terminal() string {
	return t.terminal
}

func (t *token) Value() interface{} {
	return t.value
}

func (t *token) EOF() bool {
	return t.eof
}

func (t *token) Invalid() bool {
	return t.invalid
}

func (t *token) Position() (int, int) {
	return t.row, t.col
}

// Lexeme returns the matched text.
func (t *token) Lexeme() string {
	return t.lexeme
}
