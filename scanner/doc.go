/*
Package scanner turns source text into the token streams a driver.Parser consumes.

A Spec lists the terminals of a grammar together with the patterns matching them. The same Spec can be
compiled by two lexer generators: maleeni (NewMaleeniScanner) and lexmachine (NewLexmachineScanner). Both
report positions as 1-based rows and columns, drop terminals marked Skip, and hand the parser the value
computed by Entry.Value, or the lexeme when Value is nil.
*/
package scanner

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tribble.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("tribble.scanner")
}
