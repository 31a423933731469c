package parser

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/tribble/error"
	"github.com/nihei9/tribble/grammar"
)

func TestParse(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		rules   []string
		synErr  *SyntaxError
	}{
		{
			caption: "an empty source has no rules",
			src:     "",
			rules:   []string{},
		},
		{
			caption: "blank lines and comments are ignored",
			src: `
// comment

a -> "x" // trailing comment

`,
			rules: []string{
				`a -> "x"`,
			},
		},
		{
			caption: "a rule can have a list type or an object tag",
			src: `
items [] -> []:items "," :item
items [] -> :item
item Item -> key:"STRING" ":" value:json
`,
			rules: []string{
				`items [] -> []:items "," :item`,
				`items [] -> :item`,
				`item Item -> key:"STRING" ":" value:json`,
			},
		},
		{
			caption: "a rule can be empty",
			src: `
key Root ->
key List -> "list"`,
			rules: []string{
				`key Root ->`,
				`key List -> "list"`,
			},
		},
		{
			caption: "modifiers follow a symbol and can be combined with a role",
			src: `
a -> b? "c"+ d* :e? xs:f+`,
			rules: []string{
				`a -> b? "c"+ d* :e? xs:f+`,
			},
		},
		{
			caption: "identifiers can contain hyphens and underscores",
			src: `
_my-rule -> other_rule-2`,
			rules: []string{
				`_my-rule -> other_rule-2`,
			},
		},
		{
			caption: "a string can contain escaped quotes and backslashes",
			src: `
a -> "\"" "\\"`,
			rules: []string{
				`a -> "\"" "\\"`,
			},
		},
		{
			caption: "an identifier separated from a colon is a symbol followed by a root child",
			src: `
a -> b :c`,
			rules: []string{
				`a -> b :c`,
			},
		},
		{
			caption: "a rule name is missing",
			src: `
-> "a"`,
			synErr: synErrNoRuleName,
		},
		{
			caption: "an arrow is missing",
			src: `
a b c`,
			synErr: synErrNoArrow,
		},
		{
			caption: "a role marker must touch its symbol",
			src: `
a -> : b`,
			synErr: synErrRoleWithNoSymbol,
		},
		{
			caption: "a role marker needs a symbol",
			src: `
a -> key:`,
			synErr: synErrRoleWithNoSymbol,
		},
		{
			caption: "[] must be followed by a colon",
			src: `
a -> [] b`,
			synErr: synErrListWithNoColon,
		},
		{
			caption: "a string cannot be a key",
			src: `
a -> "k":b`,
			synErr: synErrTerminalAsKey,
		},
		{
			caption: "an arrow cannot appear in children",
			src: `
a -> b -> c`,
			synErr: synErrUnexpectedToken,
		},
		{
			caption: "a string must not be empty",
			src: `
a -> ""`,
			synErr: synErrEmptyString,
		},
		{
			caption: "an unknown character is an invalid token",
			src: `
a -> $`,
			synErr: synErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			rules, err := Parse(strings.NewReader(tt.src))
			if tt.synErr != nil {
				var specErr *verr.SpecError
				if !errors.As(err, &specErr) {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, err)
				}
				if specErr.Cause != tt.synErr {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, specErr.Cause)
				}
				if specErr.Row == 0 {
					t.Fatalf("an error must have a row")
				}
				if rules != nil {
					t.Fatalf("rules must be nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testRules(t, rules, tt.rules)
		})
	}
}

func TestParse_Position(t *testing.T) {
	src := `
a -> b
a Tag -> k:"x" :c
`
	rules, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 2 {
		t.Fatalf("unexpected rule count; want: 2, got: %v", len(rules))
	}
	testPosition(t, rules[0].Pos, grammar.Position{Row: 2, Col: 1})
	testPosition(t, rules[0].Children[0].Pos, grammar.Position{Row: 2, Col: 6})
	testPosition(t, rules[1].Pos, grammar.Position{Row: 3, Col: 1})
	testPosition(t, rules[1].Children[0].Pos, grammar.Position{Row: 3, Col: 12})
	testPosition(t, rules[1].Children[1].Pos, grammar.Position{Row: 3, Col: 17})
}

func TestParse_CompiledByGrammar(t *testing.T) {
	src := `
json Object -> "{" items:items "}"
json Object -> "{" "}"
json String -> value:"STRING"
items [] -> []:items "," :item
items [] -> :item
item Item -> key:"STRING" ":" value:json
`
	rules, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	g, err := grammar.Compile(rules)
	if err != nil {
		t.Fatal(err)
	}
	if g.Start() != "json" {
		t.Fatalf("unexpected start rule; want: json, got: %v", g.Start())
	}
	if len(g.Rules) != len(rules) {
		t.Fatalf("unexpected rule count; want: %v, got: %v", len(rules), len(g.Rules))
	}
}

func testRules(t *testing.T, rules []*grammar.RawRule, expected []string) {
	t.Helper()
	if len(rules) != len(expected) {
		t.Fatalf("unexpected rule count; want: %v, got: %v", len(expected), len(rules))
	}
	for i, r := range rules {
		if r.String() != expected[i] {
			t.Errorf("unexpected rule #%v; want: %v, got: %v", i, expected[i], r.String())
		}
	}
}

func testPosition(t *testing.T, pos, expected grammar.Position) {
	t.Helper()
	if pos != expected {
		t.Fatalf("unexpected position; want: %+v, got: %+v", expected, pos)
	}
}
