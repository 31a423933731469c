package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tribble.driver'.
func tracer() tracing.Trace {
	return tracing.Select("tribble.driver")
}

var (
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	ErrInvalidToken         = errors.New("invalid token")
	ErrParserFailed         = errors.New("the parser has already failed; reset it before feeding more tokens")
)

// SyntaxError is a failure caused by the input. Cause is ErrUnexpectedToken, ErrUnexpectedEndOfInput or
// ErrInvalidToken.
type SyntaxError struct {
	Cause             error
	Terminal          string
	Row               int
	Col               int
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Row != 0 {
		fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
	}
	fmt.Fprintf(&b, "syntax error: %v", e.Cause)
	if e.Terminal != "" {
		fmt.Fprintf(&b, " %q", e.Terminal)
	}
	if len(e.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.ExpectedTerminals, ", "))
	}
	return b.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// InternalError reports a broken parsing table. It never results from the input alone.
type InternalError struct {
	State   int
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in state %v: %v", e.State, e.Message)
}

type ParserOption func(p *Parser) error

// SemanticAction registers an observer of the parser's steps.
func SemanticAction(semAct SemanticActionSet) ParserOption {
	return func(p *Parser) error {
		if semAct == nil {
			return fmt.Errorf("a semantic action set must be non-nil")
		}
		p.semAct = semAct
		return nil
	}
}

type frame struct {
	value interface{}
	state int
}

// Parser runs a parsing table over a stream of terminals fed one at a time. A Parser is not safe for
// concurrent use, but any number of parsers may share a Grammar.
//
// A state with both a reduction and shift edges prefers the shift: the reduction runs only when the next
// terminal cannot be shifted or when the input ends.
type Parser struct {
	gram   Grammar
	semAct SemanticActionSet
	state  int
	stack  []frame
	failed error
}

func NewParser(gram Grammar, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		gram:  gram,
		state: gram.InitialState(),
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Reset discards the stacks so that the parser can run over a new input.
func (p *Parser) Reset() {
	p.state = p.gram.InitialState()
	p.stack = nil
	p.failed = nil
}

// Feed shifts a terminal carrying a value.
func (p *Parser) Feed(terminal string, value interface{}) error {
	return p.feed(terminal, value, 0, 0)
}

func (p *Parser) feed(terminal string, value interface{}, row, col int) error {
	if p.failed != nil {
		return ErrParserFailed
	}

	guard := newReductionGuard()
	for {
		if next, ok := p.gram.Shift(p.state, terminal); ok {
			tracer().Debugf("state %v: shift %v and go to state %v", p.state, terminal, next)
			p.stack = append(p.stack, frame{
				value: value,
				state: p.state,
			})
			p.state = next
			if p.semAct != nil {
				p.semAct.Shift(terminal, value, row, col)
			}
			return p.fail(p.reduceEagerly())
		}

		rule, ok := p.gram.Reduction(p.state)
		if !ok {
			return p.fail(&SyntaxError{
				Cause:             ErrUnexpectedToken,
				Terminal:          terminal,
				Row:               row,
				Col:               col,
				ExpectedTerminals: p.gram.Expected(p.state),
			})
		}
		if err := guard.visit(p.state, len(p.stack)); err != nil {
			return p.fail(err)
		}
		if err := p.reduce(rule); err != nil {
			return p.fail(err)
		}
	}
}

// reduceEagerly runs the reductions of states offering nothing to shift.
func (p *Parser) reduceEagerly() error {
	guard := newReductionGuard()
	for {
		rule, ok := p.gram.Reduction(p.state)
		if !ok || p.gram.HasShift(p.state) {
			return nil
		}
		if err := guard.visit(p.state, len(p.stack)); err != nil {
			return err
		}
		if err := p.reduce(rule); err != nil {
			return err
		}
	}
}

// Finish runs the pending reductions and returns the value of the input. It fails unless the parser ends in
// the accepting state with exactly one value on its stack.
func (p *Parser) Finish() (interface{}, error) {
	if p.failed != nil {
		return nil, ErrParserFailed
	}

	guard := newReductionGuard()
	for {
		rule, ok := p.gram.Reduction(p.state)
		if !ok {
			break
		}
		if err := guard.visit(p.state, len(p.stack)); err != nil {
			return nil, p.fail(err)
		}
		if err := p.reduce(rule); err != nil {
			return nil, p.fail(err)
		}
	}

	if p.state != p.gram.AcceptState() || len(p.stack) != 1 {
		return nil, p.fail(&SyntaxError{
			Cause:             ErrUnexpectedEndOfInput,
			ExpectedTerminals: p.gram.Expected(p.state),
		})
	}

	tracer().Debugf("state %v: accept", p.state)
	if p.semAct != nil {
		p.semAct.Accept()
	}

	return p.stack[0].value, nil
}

func (p *Parser) reduce(rule int) error {
	n := p.gram.RuleLen(rule)
	if len(p.stack) < n {
		return &InternalError{
			State:   p.state,
			Message: fmt.Sprintf("stack underflow; rule %v needs %v values, the stack holds %v", p.gram.RuleName(rule), n, len(p.stack)),
		}
	}

	handle := p.stack[len(p.stack)-n:]
	children := make([]interface{}, n)
	for i, f := range handle {
		children[i] = f.value
	}

	// An empty rule resumes from the current state.
	resume := p.state
	if n > 0 {
		resume = handle[0].state
	}
	p.stack = p.stack[:len(p.stack)-n]

	name := p.gram.RuleName(rule)
	next, ok := p.gram.GoTo(resume, name)
	if !ok {
		return &InternalError{
			State:   resume,
			Message: fmt.Sprintf("no goto on %v", name),
		}
	}

	value := evaluate(p.gram.RuleShape(rule), children)
	p.stack = append(p.stack, frame{
		value: value,
		state: resume,
	})
	tracer().Debugf("state %v: reduce %v and go to state %v", p.state, name, next)
	p.state = next

	if p.semAct != nil {
		p.semAct.Reduce(name, n)
	}

	return nil
}

func (p *Parser) fail(err error) error {
	if err != nil {
		p.failed = err
		tracer().Debugf("%v", err)
	}
	return err
}

// reductionGuard detects a sequence of reductions returning to a state at the same stack depth without
// consuming input.
type reductionGuard struct {
	seen map[[2]int]struct{}
}

func newReductionGuard() *reductionGuard {
	return &reductionGuard{
		seen: map[[2]int]struct{}{},
	}
}

func (g *reductionGuard) visit(state, depth int) error {
	key := [2]int{state, depth}
	if _, ok := g.seen[key]; ok {
		return &InternalError{
			State:   state,
			Message: "reductions loop without consuming input",
		}
	}
	g.seen[key] = struct{}{}
	return nil
}
