package driver

import (
	"fmt"
	"sort"

	"github.com/nihei9/tribble/compressor"
	"github.com/nihei9/tribble/grammar"
	spec "github.com/nihei9/tribble/spec/grammar"
)

// Grammar is the parsing table a parser runs. Rules are referred to by number.
type Grammar interface {
	InitialState() int
	AcceptState() int
	Shift(state int, terminal string) (int, bool)
	GoTo(state int, nonTerminal string) (int, bool)
	Reduction(state int) (int, bool)
	HasShift(state int) bool
	Expected(state int) []string
	RuleName(rule int) string
	RuleLen(rule int) int
	RuleShape(rule int) grammar.NodeShape
}

var (
	_ Grammar = &tableGrammar{}
	_ Grammar = &compiledGrammar{}
)

type tableGrammar struct {
	t *grammar.ParsingTable
}

// NewTableGrammar runs a parsing table built in memory.
func NewTableGrammar(t *grammar.ParsingTable) Grammar {
	return &tableGrammar{
		t: t,
	}
}

func (g *tableGrammar) InitialState() int {
	return g.t.InitialState()
}

func (g *tableGrammar) AcceptState() int {
	return g.t.AcceptState()
}

func (g *tableGrammar) Shift(state int, terminal string) (int, bool) {
	return g.t.Shift(state, terminal)
}

func (g *tableGrammar) GoTo(state int, nonTerminal string) (int, bool) {
	return g.t.GoTo(state, nonTerminal)
}

func (g *tableGrammar) Reduction(state int) (int, bool) {
	r, ok := g.t.Reduction(state)
	if !ok {
		return 0, false
	}
	return r.Num, true
}

func (g *tableGrammar) HasShift(state int) bool {
	return len(g.t.States[state].Shift) > 0
}

func (g *tableGrammar) Expected(state int) []string {
	return g.t.Expected(state)
}

func (g *tableGrammar) RuleName(rule int) string {
	return g.t.Rule(rule).Name
}

func (g *tableGrammar) RuleLen(rule int) int {
	return len(g.t.Rule(rule).Children)
}

func (g *tableGrammar) RuleShape(rule int) grammar.NodeShape {
	return g.t.Rule(rule).Shape
}

type compiledGrammar struct {
	g        *spec.CompiledGrammar
	termNum  map[string]int
	ntermNum map[string]int
	shapes   []grammar.NodeShape
	expected [][]string
}

// NewGrammar runs a compiled grammar, typically one read from the output of `tribble compile`. Every state,
// rule and child index the tables hold is checked up front, so a parser never indexes out of range.
func NewGrammar(g *spec.CompiledGrammar) (Grammar, error) {
	if g.Shift == nil || g.GoTo == nil {
		return nil, fmt.Errorf("the compiled grammar has no parsing table")
	}
	if g.StateCount <= 0 {
		return nil, fmt.Errorf("the compiled grammar has no states")
	}
	if g.InitialState < 0 || g.InitialState >= g.StateCount {
		return nil, fmt.Errorf("the initial state %v is out of range [0, %v)", g.InitialState, g.StateCount)
	}
	if g.AcceptState < 0 || g.AcceptState >= g.StateCount {
		return nil, fmt.Errorf("the accept state %v is out of range [0, %v)", g.AcceptState, g.StateCount)
	}
	if len(g.Reduce) != g.StateCount {
		return nil, fmt.Errorf("the reduce table has %v entries for %v states", len(g.Reduce), g.StateCount)
	}
	for state, rule := range g.Reduce {
		if rule != spec.StateNil && (rule < 0 || rule >= len(g.Rules)) {
			return nil, fmt.Errorf("state %v reduces rule %v, which is out of range [0, %v)", state, rule, len(g.Rules))
		}
	}
	err := checkTransitions("shift", g.Shift, g.StateCount, len(g.Terminals))
	if err != nil {
		return nil, err
	}
	err = checkTransitions("goto", g.GoTo, g.StateCount, len(g.NonTerminals))
	if err != nil {
		return nil, err
	}

	cg := &compiledGrammar{
		g:        g,
		termNum:  map[string]int{},
		ntermNum: map[string]int{},
		shapes:   make([]grammar.NodeShape, len(g.Rules)),
		expected: make([][]string, g.StateCount),
	}
	for i, t := range g.Terminals {
		cg.termNum[t] = i
	}
	for i, n := range g.NonTerminals {
		cg.ntermNum[n] = i
	}
	for i, r := range g.Rules {
		if r == nil {
			return nil, fmt.Errorf("rule %v is missing", i)
		}
		shape, err := decodeShape(r)
		if err != nil {
			return nil, fmt.Errorf("rule %v (%v): %w", i, r.Name, err)
		}
		cg.shapes[i] = shape
	}
	for state := 0; state < g.StateCount; state++ {
		var terms []string
		for t, col := range cg.termNum {
			next, err := g.Shift.Lookup(state, col)
			if err != nil {
				return nil, err
			}
			if next != spec.StateNil {
				terms = append(terms, t)
			}
		}
		sort.Strings(terms)
		cg.expected[state] = terms
	}

	return cg, nil
}

// checkTransitions checks the layout of a compressed transition table and that every entry is a state.
func checkTransitions(name string, tab *compressor.Table, stateCount, colCount int) error {
	// A table over no symbols still has one column.
	if colCount == 0 {
		colCount = 1
	}
	if tab.RowCount != stateCount || tab.ColCount != colCount {
		return fmt.Errorf("the %v table is %vx%v; want %vx%v", name, tab.RowCount, tab.ColCount, stateCount, colCount)
	}
	if tab.EmptyValue != spec.StateNil {
		return fmt.Errorf("the %v table has empty value %v; want %v", name, tab.EmptyValue, spec.StateNil)
	}
	if len(tab.RowIndex) != tab.RowCount {
		return fmt.Errorf("the %v table has %v row indexes for %v rows", name, len(tab.RowIndex), tab.RowCount)
	}
	if len(tab.Owners) != len(tab.Entries) {
		return fmt.Errorf("the %v table has %v owners for %v entries", name, len(tab.Owners), len(tab.Entries))
	}
	for row, r := range tab.RowIndex {
		if r < 0 || r >= len(tab.Displacement) {
			return fmt.Errorf("the %v table maps row %v to a missing distinct row %v", name, row, r)
		}
	}
	for _, d := range tab.Displacement {
		if d < 0 {
			return fmt.Errorf("the %v table has a negative displacement %v", name, d)
		}
	}
	for state := 0; state < tab.RowCount; state++ {
		for col := 0; col < tab.ColCount; col++ {
			next, err := tab.Lookup(state, col)
			if err != nil {
				return err
			}
			if next != spec.StateNil && (next < 0 || next >= stateCount) {
				return fmt.Errorf("the %v table leads from state %v to state %v, which is out of range [0, %v)", name, state, next, stateCount)
			}
		}
	}
	return nil
}

func decodeShape(r *spec.Reducer) (grammar.NodeShape, error) {
	if r.Length < 0 {
		return grammar.NodeShape{}, fmt.Errorf("negative length: %v", r.Length)
	}
	inRange := func(index int) bool {
		return index >= 0 && index < r.Length
	}
	switch grammar.ShapeKind(r.Shape) {
	case grammar.ShapeNull:
		return grammar.NullShape(), nil
	case grammar.ShapeRoot:
		if !inRange(r.Root) {
			return grammar.NodeShape{}, fmt.Errorf("root child %v is out of range [0, %v)", r.Root, r.Length)
		}
		return grammar.RootShape(r.Root), nil
	case grammar.ShapeList:
		if r.Root != -1 && !inRange(r.Root) {
			return grammar.NodeShape{}, fmt.Errorf("root child %v is out of range [0, %v)", r.Root, r.Length)
		}
		if r.List != -1 && !inRange(r.List) {
			return grammar.NodeShape{}, fmt.Errorf("list child %v is out of range [0, %v)", r.List, r.Length)
		}
		return grammar.ListShape(r.List, r.Root), nil
	case grammar.ShapeObject:
		keys := make([]grammar.Key, len(r.Keys))
		for i, k := range r.Keys {
			if k == nil || !inRange(k.Index) {
				return grammar.NodeShape{}, fmt.Errorf("key %v refers to a child out of range [0, %v)", i, r.Length)
			}
			keys[i] = grammar.Key{
				Name:  k.Name,
				Index: k.Index,
			}
		}
		return grammar.ObjectShape(r.Tag, keys), nil
	}
	return grammar.NodeShape{}, fmt.Errorf("unknown shape: %v", r.Shape)
}

func (g *compiledGrammar) InitialState() int {
	return g.g.InitialState
}

func (g *compiledGrammar) AcceptState() int {
	return g.g.AcceptState
}

func (g *compiledGrammar) Shift(state int, terminal string) (int, bool) {
	col, ok := g.termNum[terminal]
	if !ok {
		return 0, false
	}
	next, err := g.g.Shift.Lookup(state, col)
	if err != nil || next == spec.StateNil {
		return 0, false
	}
	return next, true
}

func (g *compiledGrammar) GoTo(state int, nonTerminal string) (int, bool) {
	col, ok := g.ntermNum[nonTerminal]
	if !ok {
		return 0, false
	}
	next, err := g.g.GoTo.Lookup(state, col)
	if err != nil || next == spec.StateNil {
		return 0, false
	}
	return next, true
}

func (g *compiledGrammar) Reduction(state int) (int, bool) {
	rule := g.g.Reduce[state]
	return rule, rule != spec.StateNil
}

func (g *compiledGrammar) HasShift(state int) bool {
	return len(g.expected[state]) > 0
}

func (g *compiledGrammar) Expected(state int) []string {
	return g.expected[state]
}

func (g *compiledGrammar) RuleName(rule int) string {
	return g.g.Rules[rule].Name
}

func (g *compiledGrammar) RuleLen(rule int) int {
	return g.g.Rules[rule].Length
}

func (g *compiledGrammar) RuleShape(rule int) grammar.NodeShape {
	return g.shapes[rule]
}
