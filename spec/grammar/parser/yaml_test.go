package parser

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/tribble/error"
)

func TestParseYAML(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		rules   []string
		synErr  *SyntaxError
	}{
		{
			caption: "an empty document has no rules",
			src:     "",
			rules:   []string{},
		},
		{
			caption: "rules can have types and children",
			src: `
- name: items
  type: "[]"
  children: ['[]:items', '","', ':item']
- name: items
  type: "[]"
  children: [':item']
- name: item
  type: Item
  children:
    - 'key:"STRING"'
    - '":"'
    - value:json
- name: empty
`,
			rules: []string{
				`items [] -> []:items "," :item`,
				`items [] -> :item`,
				`item Item -> key:"STRING" ":" value:json`,
				`empty ->`,
			},
		},
		{
			caption: "a child can have modifiers",
			src: `
- name: a
  children: ['b?', 'xs:c*']
`,
			rules: []string{
				`a -> b? xs:c*`,
			},
		},
		{
			caption: "a grammar must be a sequence",
			src: `
name: a
`,
			synErr: synErrYAMLNotAList,
		},
		{
			caption: "a rule needs a name",
			src: `
- type: Foo
  children: ['a']
`,
			synErr: synErrYAMLNoRuleName,
		},
		{
			caption: "a rule cannot have unknown fields",
			src: `
- name: a
  alias: b
`,
			synErr: synErrYAMLUnknownField,
		},
		{
			caption: "a type cannot contain spaces",
			src: `
- name: a
  type: Foo Bar
`,
			synErr: synErrYAMLInvalidType,
		},
		{
			caption: "children must be a sequence",
			src: `
- name: a
  children: b
`,
			synErr: synErrYAMLInvalidChildren,
		},
		{
			caption: "a child string holds exactly one child",
			src: `
- name: a
  children: ['b c']
`,
			synErr: synErrYAMLMultiChildren,
		},
		{
			caption: "a child string is checked with the textual syntax",
			src: `
- name: a
  children: ['"k":b']
`,
			synErr: synErrTerminalAsKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			rules, err := ParseYAML(strings.NewReader(tt.src))
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
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testRules(t, rules, tt.rules)
		})
	}
}
