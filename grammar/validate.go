package grammar

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// valueClass is the kind of value a name yields. classAny stands for a name whose class is not determined,
// e.g. one that only reaches itself through pass-through rules.
type valueClass string

const (
	classNull   = valueClass("null")
	classString = valueClass("string")
	classObject = valueClass("object")
	classList   = valueClass("list")
	classAny    = valueClass("any")
)

func (c *Compiler) validate(g *Grammar) error {
	// passThrough maps a name to the names it reaches through rules with a single non-terminal child. Each
	// edge remembers the first rule that introduced it.
	passThrough := treemap.NewWith(utils.StringComparator)
	for _, rule := range g.Rules {
		if to, ok := rule.passThrough(); ok {
			var edges *treemap.Map
			if v, found := passThrough.Get(rule.Name); found {
				edges = v.(*treemap.Map)
			} else {
				edges = treemap.NewWith(utils.StringComparator)
				passThrough.Put(rule.Name, edges)
			}
			if _, found := edges.Get(to); !found {
				edges.Put(to, rule)
			}
		}

		for _, child := range rule.Children {
			if !child.Symbol.IsNonTerminal() {
				continue
			}
			if !g.HasName(child.Symbol.Name) {
				return c.errorAtRule(ErrUnknownName, rule, child.Index, fmt.Sprintf("'%v'; hint: add a rule like: %v -> ...", child.Symbol.Name, child.Symbol.Name))
			}
		}
	}

	for _, name := range g.Names() {
		if rule, ok := findCycle(passThrough, name); ok {
			return c.errorAtRule(ErrCycleDetected, rule, 0, fmt.Sprintf("%v reaches itself through %v", name, rule))
		}
	}

	classes := map[string]valueClass{}
	for _, name := range g.Names() {
		nameClass(g, classes, map[string]struct{}{}, name)
	}

	for _, name := range g.Names() {
		expected := classes[name]
		for _, rule := range g.Alternatives(name) {
			actual := ruleClass(g, classes, map[string]struct{}{}, rule)
			if actual == classAny || actual == classNull || actual == expected {
				continue
			}
			return c.errorAtRule(ErrShapeConflict, rule, indexNil, fmt.Sprintf("rule has type %v but another rule has type %v", actual, expected))
		}
	}

	return nil
}

// findCycle walks the pass-through relation from a name and returns the rule closing a cycle back to it.
func findCycle(passThrough *treemap.Map, name string) (*Rule, bool) {
	visited := treeset.NewWith(utils.StringComparator)
	stack := []string{name}
	for len(stack) > 0 {
		from := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v, ok := passThrough.Get(from)
		if !ok {
			continue
		}
		it := v.(*treemap.Map).Iterator()
		for it.Next() {
			to := it.Key().(string)
			if to == name {
				return it.Value().(*Rule), true
			}
			if visited.Contains(to) {
				continue
			}
			visited.Add(to)
			stack = append(stack, to)
		}
	}
	return nil, false
}

// nameClass resolves the value class of a name. The first alternative with a concrete class wins; a null
// alternative beats an undetermined one. Names already being resolved count as classAny, so the recursion
// terminates on any reference graph.
func nameClass(g *Grammar, classes map[string]valueClass, resolving map[string]struct{}, name string) valueClass {
	if class, ok := classes[name]; ok {
		return class
	}
	if _, ok := resolving[name]; ok {
		return classAny
	}
	alts := g.Alternatives(name)
	if len(alts) == 0 {
		return classAny
	}

	resolving[name] = struct{}{}
	defer delete(resolving, name)

	var best valueClass
	for _, rule := range alts {
		class := ruleClass(g, classes, resolving, rule)
		if class == classAny {
			if best == "" {
				best = classAny
			}
			continue
		}
		if class == classNull {
			best = classNull
			continue
		}
		best = class
		break
	}
	classes[name] = best
	return best
}

func ruleClass(g *Grammar, classes map[string]valueClass, resolving map[string]struct{}, rule *Rule) valueClass {
	switch rule.Shape.Kind {
	case ShapeObject:
		return classObject
	case ShapeList:
		return classList
	case ShapeRoot:
		sym := rule.Children[rule.Shape.Root].Symbol
		if sym.IsTerminal() {
			return classString
		}
		if sym.Name == rule.Name {
			return classAny
		}
		return nameClass(g, classes, resolving, sym.Name)
	}
	return classNull
}
