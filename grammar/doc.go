/*
Package grammar compiles EBNF-like grammar descriptions into a grammar IR and builds LR(0) parsing tables
from it.

A grammar is given as an ordered list of raw rules. Each rule names the value it yields when reduced:

	json Object -> "{" items:items "}"
	items []    -> []:items "," :item
	items []    -> :item
	item Item   -> key:"STRING" ":" value:json

Compile infers a NodeShape for every rule, desugars the EBNF modifiers `?`, `+` and `*` into synthetic rules
and validates the result. BuildParsingTable builds the LR(0) automaton for a compiled grammar.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tribble.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("tribble.grammar")
}
