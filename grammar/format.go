package grammar

import (
	"fmt"
	"strings"
)

// Format renders the grammar in rule syntax. Consecutive rules sharing a name form a group; groups are
// separated by a blank line and the arrows within a group are aligned.
func (g *Grammar) Format() string {
	var groups [][]*Rule
	lastName := ""
	for _, rule := range g.Rules {
		if len(groups) == 0 || rule.Name != lastName {
			groups = append(groups, nil)
			lastName = rule.Name
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], rule)
	}

	var b strings.Builder
	for i, group := range groups {
		if i > 0 {
			fmt.Fprintf(&b, "\n")
		}
		arrowCol := 0
		for _, rule := range group {
			if l := len(rulePrefix(rule)); l > arrowCol {
				arrowCol = l
			}
		}
		for _, rule := range group {
			fmt.Fprintf(&b, "%v\n", formatRule(rule, arrowCol))
		}
	}
	return b.String()
}

func rulePrefix(rule *Rule) string {
	switch rule.Shape.Kind {
	case ShapeObject:
		return rule.Name + " " + rule.Shape.Tag
	case ShapeList:
		return rule.Name + " []"
	}
	return rule.Name
}

func formatRule(rule *Rule, arrowCol int) string {
	var b strings.Builder
	prefix := rulePrefix(rule)
	fmt.Fprint(&b, prefix)
	for i := len(prefix); i < arrowCol; i++ {
		b.WriteByte(' ')
	}
	fmt.Fprint(&b, " ->")
	for _, c := range rule.Children {
		fmt.Fprintf(&b, " %v%v", childPrefix(rule, c.Index), c.Symbol)
	}
	return b.String()
}

func childPrefix(rule *Rule, index int) string {
	switch rule.Shape.Kind {
	case ShapeObject:
		if key := rule.Shape.keyOf(index); key != "" {
			return key + ":"
		}
	case ShapeList:
		if rule.Shape.List == index {
			return "[]:"
		}
		if rule.Shape.Root == index {
			return ":"
		}
	case ShapeRoot:
		if rule.Shape.Root == index {
			return ":"
		}
	}
	return ""
}
