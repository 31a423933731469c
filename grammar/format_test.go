package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGrammar_Format(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tribble.grammar")
	defer teardown()

	g := testCompile(t, bracketRules()...)
	expected := `S Id -> "(" a:L ")"
S Id -> a:"word"

L Id  -> a:S
L Seq -> a:L ";" b:S
`
	if g.Format() != expected {
		t.Fatalf("unexpected format:\nwant:\n%v\ngot:\n%v", expected, g.Format())
	}

	if s := g.Rules[3].String(); s != `L Seq -> a:L ";" b:S` {
		t.Fatalf("unexpected rule: %v", s)
	}
}

func TestGrammar_FormatRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tribble.grammar")
	defer teardown()

	// Formatting the raw rules and the compiled rules agrees for grammars without modifiers.
	rules := []*RawRule{
		rawList("items", ListOf(nt("items")), term(","), RootOf(nt("item"))),
		rawList("items", RootOf(nt("item"))),
		rawRule("item", term("("), RootOf(nt("value")), term(")")),
		rawRule("item", RootOf(nt("value"))),
		rawObject("value", "Value", KeyOf("v", term("v"))),
		rawRule("value", term("none")),
	}
	g := testCompile(t, rules...)
	for i, rule := range g.Rules {
		if rule.String() != rules[i].String() {
			t.Errorf("unexpected rule: want: %v, got: %v", rules[i], rule)
		}
	}
}
