package grammar

import (
	"errors"
	"testing"

	verr "github.com/nihei9/tribble/error"
)

func nt(name string) *RawChild {
	return RawNonTerminal(name)
}

func term(name string) *RawChild {
	return RawTerminal(name)
}

func opt(c *RawChild) *RawChild {
	return RawModified(ModifierOptional, c)
}

func plus(c *RawChild) *RawChild {
	return RawModified(ModifierOneOrMore, c)
}

func star(c *RawChild) *RawChild {
	return RawModified(ModifierZeroOrMore, c)
}

func rawRule(name string, children ...*RawChild) *RawRule {
	return &RawRule{
		Name:     name,
		Children: children,
	}
}

func rawList(name string, children ...*RawChild) *RawRule {
	return &RawRule{
		Name: name,
		Annotation: Annotation{
			Kind: AnnotationList,
		},
		Children: children,
	}
}

func rawObject(name, tag string, children ...*RawChild) *RawRule {
	return &RawRule{
		Name: name,
		Annotation: Annotation{
			Kind: AnnotationObject,
			Tag:  tag,
		},
		Children: children,
	}
}

func testCompile(t *testing.T, rules ...*RawRule) *Grammar {
	t.Helper()

	g, err := Compile(rules)
	if err != nil {
		t.Fatalf("failed to compile the grammar: %v", err)
	}
	return g
}

func testBuildTable(t *testing.T, rules []*RawRule, opts ...TableOption) *ParsingTable {
	t.Helper()

	tab, err := BuildParsingTable(testCompile(t, rules...), opts...)
	if err != nil {
		t.Fatalf("failed to build a parsing table: %v", err)
	}
	return tab
}

func testSpecError(t *testing.T, err error, cause error) *verr.SpecError {
	t.Helper()

	if err == nil {
		t.Fatalf("an error was expected: %v", cause)
	}
	var specErr *verr.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("unexpected error type: want: %T, got: %T: %v", specErr, err, err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("unexpected error: want: %v, got: %v", cause, err)
	}
	return specErr
}

// bracketRules is a grammar of nested brackets:
//
//	S Id  -> "(" a:L ")"
//	S Id  -> a:"word"
//	L Id  -> a:S
//	L Seq -> a:L ";" b:S
func bracketRules() []*RawRule {
	return []*RawRule{
		rawObject("S", "Id", term("("), KeyOf("a", nt("L")), term(")")),
		rawObject("S", "Id", KeyOf("a", term("word"))),
		rawObject("L", "Id", KeyOf("a", nt("S"))),
		rawObject("L", "Seq", KeyOf("a", nt("L")), term(";"), KeyOf("b", nt("S"))),
	}
}
