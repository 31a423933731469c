package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	verr "github.com/nihei9/tribble/error"
)

type ConflictKind string

const (
	ConflictShiftReduce  = ConflictKind("shift/reduce")
	ConflictReduceReduce = ConflictKind("reduce/reduce")
)

// Conflict is a state offering more than one action. A shift/reduce conflict is resolved by preferring the
// shift unless the table was built with RejectShiftReduce.
type Conflict struct {
	Kind      ConflictKind
	State     int
	Rules     []*Rule
	Terminals []string
}

func (c *Conflict) String() string {
	var rules []string
	for _, r := range c.Rules {
		rules = append(rules, r.String())
	}
	s := fmt.Sprintf("%v conflict in state %v: %v", c.Kind, c.State, strings.Join(rules, " / "))
	if len(c.Terminals) > 0 {
		s += fmt.Sprintf(" (shift on %v)", strings.Join(c.Terminals, ", "))
	}
	return s
}

type ConflictPolicy string

const (
	PreferShift       = ConflictPolicy("prefer-shift")
	RejectShiftReduce = ConflictPolicy("reject-shift-reduce")
)

type tableConfig struct {
	policy ConflictPolicy
}

type TableOption func(config *tableConfig)

// WithConflictPolicy selects how shift/reduce conflicts are treated. Reduce/reduce conflicts are always
// errors.
func WithConflictPolicy(policy ConflictPolicy) TableOption {
	return func(config *tableConfig) {
		config.policy = policy
	}
}

// ParsingTable is the compiled LR(0) automaton of a grammar. State 0 is the initial state and state 1 the
// accepting state. A ParsingTable is immutable and may be shared by any number of parsers.
type ParsingTable struct {
	Grammar   *Grammar
	States    []*State
	Conflicts []*Conflict

	accept *Rule
}

// BuildParsingTable builds the LR(0) automaton of a grammar and installs at most one reduction per state.
func BuildParsingTable(g *Grammar, opts ...TableOption) (*ParsingTable, error) {
	config := &tableConfig{
		policy: PreferShift,
	}
	for _, opt := range opts {
		opt(config)
	}

	automaton, err := genLR0Automaton(g)
	if err != nil {
		return nil, err
	}

	ptab := &ParsingTable{
		Grammar: g,
		States:  automaton.states,
		accept:  automaton.accept,
	}
	for _, state := range ptab.States {
		state.Shift = map[string]int{}
		state.GoTo = map[string]int{}
		for _, e := range state.Edges {
			if e.Symbol.IsTerminal() {
				state.Shift[e.Symbol.Name] = e.To.Num
			} else {
				state.GoTo[e.Symbol.Name] = e.To.Num
			}
		}

		var reducible []*Item
		for _, item := range state.Items {
			if item.Reducible() {
				reducible = append(reducible, item)
			}
		}
		if len(reducible) > 1 {
			c := &Conflict{
				Kind:  ConflictReduceReduce,
				State: state.Num,
			}
			for _, item := range reducible {
				c.Rules = append(c.Rules, item.Rule)
			}
			tracer().Errorf("%v", c)
			return nil, conflictError(ErrReduceReduceConflict, c)
		}
		if len(reducible) == 0 || reducible[0].isAccept() {
			continue
		}

		state.Reduce = reducible[0].Rule
		if len(state.Shift) == 0 {
			continue
		}
		c := &Conflict{
			Kind:      ConflictShiftReduce,
			State:     state.Num,
			Rules:     []*Rule{state.Reduce},
			Terminals: sortedKeys(state.Shift),
		}
		ptab.Conflicts = append(ptab.Conflicts, c)
		if config.policy == RejectShiftReduce {
			tracer().Errorf("%v", c)
			return nil, conflictError(ErrShiftReduceConflict, c)
		}
		tracer().Infof("%v; the parser prefers the shift", c)
	}

	return ptab, nil
}

func conflictError(cause error, c *Conflict) *verr.SpecError {
	rule := ""
	for _, r := range c.Rules {
		if r.Num != acceptRuleNum {
			rule = r.Name
			break
		}
	}
	return &verr.SpecError{
		Cause:  cause,
		Detail: c.String(),
		Rule:   rule,
		Child:  indexNil,
	}
}

func (t *ParsingTable) InitialState() int {
	return 0
}

func (t *ParsingTable) AcceptState() int {
	return 1
}

func (t *ParsingTable) Shift(state int, terminal string) (int, bool) {
	next, ok := t.States[state].Shift[terminal]
	return next, ok
}

func (t *ParsingTable) GoTo(state int, nonTerminal string) (int, bool) {
	next, ok := t.States[state].GoTo[nonTerminal]
	return next, ok
}

// Reduction returns the rule installed in a state.
func (t *ParsingTable) Reduction(state int) (*Rule, bool) {
	r := t.States[state].Reduce
	return r, r != nil
}

// Rule returns a rule by number. The number -1 denotes the implicit accept rule `$ -> start`.
func (t *ParsingTable) Rule(num int) *Rule {
	if num == acceptRuleNum {
		return t.accept
	}
	return t.Grammar.Rules[num]
}

// Expected returns the terminals a state can shift, sorted by name.
func (t *ParsingTable) Expected(state int) []string {
	return sortedKeys(t.States[state].Shift)
}

type tableSnapshot struct {
	States []stateSnapshot
}

type stateSnapshot struct {
	Shift  map[string]int
	GoTo   map[string]int
	Reduce int
}

// Fingerprint hashes the shift, goto and reduce tables. Compiling the same rules twice yields the same
// fingerprint.
func (t *ParsingTable) Fingerprint() (string, error) {
	snap := make([]stateSnapshot, len(t.States))
	for i, s := range t.States {
		reduce := indexNil
		if s.Reduce != nil {
			reduce = s.Reduce.Num
		}
		snap[i] = stateSnapshot{
			Shift:  s.Shift,
			GoTo:   s.GoTo,
			Reduce: reduce,
		}
	}
	return structhash.Hash(tableSnapshot{States: snap}, 1)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
