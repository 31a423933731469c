package parser

import (
	"errors"
	"io"
	"strings"

	verr "github.com/nihei9/tribble/error"
	"github.com/nihei9/tribble/grammar"
	"gopkg.in/yaml.v3"
)

// ParseYAML reads rules written as a YAML sequence:
//
//	- name: item
//	  type: Item
//	  children: ['key:"STRING"', '":"', 'value:json']
//
// `type` is optional and takes the same values as the type of a textual rule. Each element of `children`
// holds one child in the textual syntax.
func ParseYAML(src io.Reader) ([]*grammar.RawRule, error) {
	var doc yaml.Node
	err := yaml.NewDecoder(src).Decode(&doc)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []*grammar.RawRule{}, nil
		}
		return nil, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, yamlError(synErrYAMLNotAList, root)
	}

	rules := make([]*grammar.RawRule, 0, len(root.Content))
	for _, n := range root.Content {
		rule, err := parseYAMLRule(n)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func parseYAMLRule(n *yaml.Node) (*grammar.RawRule, error) {
	if n.Kind != yaml.MappingNode {
		return nil, yamlError(synErrYAMLNoRuleName, n)
	}

	rule := &grammar.RawRule{
		Children: []*grammar.RawChild{},
		Pos: grammar.Position{
			Row: n.Line,
			Col: n.Column,
		},
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "name":
			rule.Name = value.Value
		case "type":
			switch {
			case value.Value == "[]":
				rule.Annotation = grammar.Annotation{
					Kind: grammar.AnnotationList,
				}
			case value.Value == "" || strings.ContainsAny(value.Value, " \t:[]\"?+*"):
				return nil, yamlError(synErrYAMLInvalidType, value)
			default:
				rule.Annotation = grammar.Annotation{
					Kind: grammar.AnnotationObject,
					Tag:  value.Value,
				}
			}
		case "children":
			if value.Kind != yaml.SequenceNode {
				return nil, yamlError(synErrYAMLInvalidChildren, value)
			}
			for _, c := range value.Content {
				if c.Kind != yaml.ScalarNode {
					return nil, yamlError(synErrYAMLInvalidChildren, c)
				}
				child, err := parseChildString(c)
				if err != nil {
					return nil, err
				}
				rule.Children = append(rule.Children, child)
			}
		default:
			return nil, yamlError(synErrYAMLUnknownField, key)
		}
	}
	if rule.Name == "" {
		return nil, yamlError(synErrYAMLNoRuleName, n)
	}

	return rule, nil
}

// parseChildString parses a child in the textual syntax. Positions in the result and in errors refer to the
// YAML node.
func parseChildString(n *yaml.Node) (child *grammar.RawChild, retErr error) {
	p, err := newParser(strings.NewReader(n.Value))
	if err != nil {
		return nil, err
	}

	defer func() {
		err := recover()
		if err != nil {
			specErr, ok := err.(*verr.SpecError)
			if !ok {
				panic(err)
			}
			specErr.Row = n.Line
			specErr.Col = n.Column
			child = nil
			retErr = specErr
		}
	}()

	child = p.parseChild()
	if !p.consume(tokenKindEOF) {
		raiseSyntaxError(synErrYAMLMultiChildren, p.peek().pos)
	}
	relocate(child, n)

	return child, nil
}

func relocate(c *grammar.RawChild, n *yaml.Node) {
	for ; c != nil; c = c.Inner {
		c.Pos = grammar.Position{
			Row: n.Line,
			Col: n.Column,
		}
	}
}

func yamlError(err *SyntaxError, n *yaml.Node) error {
	return &verr.SpecError{
		Cause: err,
		Child: -1,
		Row:   n.Line,
		Col:   n.Column,
	}
}
