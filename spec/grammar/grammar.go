package grammar

import "github.com/nihei9/tribble/compressor"

// StateNil is the empty entry of the shift, goto and reduce tables.
const StateNil = -1

// CompiledGrammar is the portable form of a parsing table. Shift maps (state, terminal) and GoTo maps
// (state, non-terminal) to the next state; Reduce maps a state to the number of the rule it reduces.
type CompiledGrammar struct {
	Name         string            `json:"name"`
	StartSymbol  string            `json:"start_symbol"`
	Fingerprint  string            `json:"fingerprint"`
	InitialState int               `json:"initial_state"`
	AcceptState  int               `json:"accept_state"`
	StateCount   int               `json:"state_count"`
	Terminals    []string          `json:"terminals"`
	NonTerminals []string          `json:"non_terminals"`
	Shift        *compressor.Table `json:"shift"`
	GoTo         *compressor.Table `json:"goto"`
	Reduce       []int             `json:"reduce"`
	Rules        []*Reducer        `json:"rules"`
}

// Reducer describes how the parser builds the value of a rule.
type Reducer struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
	Shape  string `json:"shape"`
	Tag    string `json:"tag,omitempty"`
	Root   int    `json:"root"`
	List   int    `json:"list"`
	Keys   []*Key `json:"keys,omitempty"`
}

type Key struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}
