package grammar

import (
	"fmt"
)

type ShapeKind string

const (
	ShapeNull   = ShapeKind("null")
	ShapeRoot   = ShapeKind("root")
	ShapeList   = ShapeKind("list")
	ShapeObject = ShapeKind("object")
)

func (k ShapeKind) String() string {
	return string(k)
}

// indexNil marks an absent child index in a NodeShape.
const indexNil = -1

// Key binds a field name of an object-shaped rule to a child.
type Key struct {
	Name  string
	Index int
}

// NodeShape describes the value a rule yields when it is reduced.
//
//   - ShapeNull discards all children and yields null.
//   - ShapeRoot yields the value of child Root unchanged.
//   - ShapeList yields a sequence. List names the child holding the accumulated prefix and Root the child
//     appended to it. Either may be absent (-1).
//   - ShapeObject yields a record tagged Tag with one field per key.
type NodeShape struct {
	Kind ShapeKind
	Root int
	List int
	Tag  string
	Keys []Key
}

func NullShape() NodeShape {
	return NodeShape{
		Kind: ShapeNull,
		Root: indexNil,
		List: indexNil,
	}
}

func RootShape(index int) NodeShape {
	return NodeShape{
		Kind: ShapeRoot,
		Root: index,
		List: indexNil,
	}
}

// ListShape builds a list shape. Pass -1 for an absent index.
func ListShape(list, root int) NodeShape {
	return NodeShape{
		Kind: ShapeList,
		Root: root,
		List: list,
	}
}

func ObjectShape(tag string, keys []Key) NodeShape {
	return NodeShape{
		Kind: ShapeObject,
		Root: indexNil,
		List: indexNil,
		Tag:  tag,
		Keys: keys,
	}
}

func (s NodeShape) HasRoot() bool {
	return s.Root != indexNil
}

func (s NodeShape) HasList() bool {
	return s.List != indexNil
}

// keyOf returns the field name bound to a child or an empty string.
func (s NodeShape) keyOf(index int) string {
	for _, k := range s.Keys {
		if k.Index == index {
			return k.Name
		}
	}
	return ""
}

func (s NodeShape) String() string {
	switch s.Kind {
	case ShapeRoot:
		return fmt.Sprintf("root(%v)", s.Root)
	case ShapeList:
		return fmt.Sprintf("list(%v, %v)", s.List, s.Root)
	case ShapeObject:
		return fmt.Sprintf("object(%v)", s.Tag)
	}
	return "null"
}

// Child is a symbol reference on the right-hand side of a rule.
type Child struct {
	Symbol Symbol
	Index  int
}

// Rule is one alternative of a name.
type Rule struct {
	Num       int
	Name      string
	Shape     NodeShape
	Children  []*Child
	Synthetic bool
}

func (r *Rule) isEmpty() bool {
	return len(r.Children) == 0
}

// passThrough returns the name of the only child of the rule when that child is a non-terminal. The role of the
// child does not matter.
func (r *Rule) passThrough() (string, bool) {
	if len(r.Children) != 1 || !r.Children[0].Symbol.IsNonTerminal() {
		return "", false
	}
	return r.Children[0].Symbol.Name, true
}

func (r *Rule) String() string {
	return formatRule(r, 0)
}

// Grammar is a compiled grammar. Rules appear in declaration order followed by the synthetic rules generated
// for EBNF modifiers. The start symbol is the name of the first rule.
type Grammar struct {
	Rules []*Rule

	rulesByName map[string][]*Rule
	names       []string
}

func newGrammar() *Grammar {
	return &Grammar{
		rulesByName: map[string][]*Rule{},
	}
}

func (g *Grammar) add(rule *Rule) {
	rule.Num = len(g.Rules)
	g.Rules = append(g.Rules, rule)
	if _, ok := g.rulesByName[rule.Name]; !ok {
		g.names = append(g.names, rule.Name)
	}
	g.rulesByName[rule.Name] = append(g.rulesByName[rule.Name], rule)
}

// Start returns the start symbol.
func (g *Grammar) Start() string {
	if len(g.Rules) == 0 {
		return ""
	}
	return g.Rules[0].Name
}

// Alternatives returns the rules sharing a name in declaration order.
func (g *Grammar) Alternatives(name string) []*Rule {
	return g.rulesByName[name]
}

func (g *Grammar) HasName(name string) bool {
	return len(g.rulesByName[name]) > 0
}

// Names returns every rule name in order of first appearance.
func (g *Grammar) Names() []string {
	return g.names
}

// Terminals returns the names of all terminals referenced by the grammar in order of first appearance.
func (g *Grammar) Terminals() []string {
	seen := map[string]struct{}{}
	var terms []string
	for _, rule := range g.Rules {
		for _, c := range rule.Children {
			if !c.Symbol.IsTerminal() {
				continue
			}
			if _, ok := seen[c.Symbol.Name]; ok {
				continue
			}
			seen[c.Symbol.Name] = struct{}{}
			terms = append(terms, c.Symbol.Name)
		}
	}
	return terms
}
