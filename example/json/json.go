// Package json parses JSON with a grammar compiled by tribble. It serves as an example of the whole pipeline:
// the grammar is written in the textual syntax, the lexer is compiled by maleeni and the typed values the
// parser yields are converted into plain Go values.
package json

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/nihei9/tribble/driver"
	"github.com/nihei9/tribble/grammar"
	"github.com/nihei9/tribble/scanner"
	"github.com/nihei9/tribble/spec/grammar/parser"
)

// GrammarSource is a left-recursive JSON grammar without empty rules, so that it is LR(0).
const GrammarSource = `
json Object -> "{" items:items "}"
json Object -> "{" "}"
json Array  -> "[" items:array "]"
json Array  -> "[" "]"
json String -> value:"STRING"
json Number -> value:"NUMBER"
json Bool   -> value:"TRUE"
json Bool   -> value:"FALSE"
json Null   -> "NULL"

items [] -> []:items "," :item
items [] -> :item

array [] -> []:array "," :json
array [] -> :json

item Item -> key:"STRING" ":" value:json
`

// NewLexSpec returns the terminals of GrammarSource. STRING tokens carry unquoted strings; the other tokens
// carry their lexemes.
func NewLexSpec() *scanner.Spec {
	str := scanner.PatternEntry("STRING", `"([^"\\\u{0000}-\u{001F}]|\\["\\/bfnrt]|\\u[0-9A-Fa-f][0-9A-Fa-f][0-9A-Fa-f][0-9A-Fa-f])*"`)
	str.Value, _ = scanner.Converter("string")
	return &scanner.Spec{
		Entries: []*scanner.Entry{
			scanner.SkipEntry("space", `[\u{0009}\u{000A}\u{000D}\u{0020}]+`),
			scanner.PatternEntry("NUMBER", `(\u{002D})?(0|[1-9][0-9]*)(\.[0-9]+)?((e|E)(\+|\u{002D})?[0-9]+)?`),
			str,
			scanner.LiteralEntry("{", "{"),
			scanner.LiteralEntry("}", "}"),
			scanner.LiteralEntry("[", "["),
			scanner.LiteralEntry("]", "]"),
			scanner.LiteralEntry(",", ","),
			scanner.LiteralEntry(":", ":"),
			scanner.LiteralEntry("TRUE", "true"),
			scanner.LiteralEntry("FALSE", "false"),
			scanner.LiteralEntry("NULL", "null"),
		},
	}
}

type compiled struct {
	gram driver.Grammar
	scan *scanner.MaleeniScanner
}

var (
	jsonOnce     sync.Once
	jsonCompiled *compiled
	jsonErr      error
)

func load() (*compiled, error) {
	jsonOnce.Do(func() {
		jsonCompiled, jsonErr = compile()
	})
	return jsonCompiled, jsonErr
}

func compile() (*compiled, error) {
	rules, err := parser.Parse(strings.NewReader(GrammarSource))
	if err != nil {
		return nil, err
	}
	g, err := grammar.Compile(rules, grammar.SourceName("json"))
	if err != nil {
		return nil, err
	}
	t, err := grammar.BuildParsingTable(g, grammar.WithConflictPolicy(grammar.RejectShiftReduce))
	if err != nil {
		return nil, err
	}
	scan, err := scanner.NewMaleeniScanner(NewLexSpec())
	if err != nil {
		return nil, err
	}
	return &compiled{
		gram: driver.NewTableGrammar(t),
		scan: scan,
	}, nil
}

// Parse parses a JSON text. Objects become map[string]interface{}, arrays []interface{}, numbers float64,
// and null nil.
func Parse(src io.Reader) (interface{}, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	p, err := driver.NewParser(c.gram)
	if err != nil {
		return nil, err
	}
	toks, err := c.scan.Scan(src)
	if err != nil {
		return nil, err
	}
	v, err := driver.Parse(p, toks)
	if err != nil {
		return nil, err
	}
	return convert(v)
}

func convert(v interface{}) (interface{}, error) {
	obj, ok := v.(*driver.Object)
	if !ok {
		return nil, fmt.Errorf("unexpected value: %#v", v)
	}
	switch obj.Tag {
	case "Object":
		m := map[string]interface{}{}
		items, _ := obj.Fields["items"].([]interface{})
		for _, it := range items {
			item, ok := it.(*driver.Object)
			if !ok {
				return nil, fmt.Errorf("unexpected object item: %#v", it)
			}
			key, _ := item.Fields["key"].(string)
			value, err := convert(item.Fields["value"])
			if err != nil {
				return nil, err
			}
			m[key] = value
		}
		return m, nil
	case "Array":
		items, _ := obj.Fields["items"].([]interface{})
		a := make([]interface{}, 0, len(items))
		for _, it := range items {
			e, err := convert(it)
			if err != nil {
				return nil, err
			}
			a = append(a, e)
		}
		return a, nil
	case "String":
		return obj.Fields["value"], nil
	case "Number":
		lexeme, _ := obj.Fields["value"].(string)
		return strconv.ParseFloat(lexeme, 64)
	case "Bool":
		return obj.Fields["value"] == "true", nil
	case "Null":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown tag: %v", obj.Tag)
}
