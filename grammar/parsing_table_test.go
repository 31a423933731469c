package grammar

import (
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuildParsingTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tribble.grammar")
	defer teardown()

	tab := testBuildTable(t, bracketRules(), WithConflictPolicy(RejectShiftReduce))

	if tab.InitialState() != 0 || tab.AcceptState() != 1 {
		t.Fatalf("unexpected initial and accept states: %v, %v", tab.InitialState(), tab.AcceptState())
	}
	if len(tab.Conflicts) != 0 {
		t.Fatalf("unexpected conflicts: %v", tab.Conflicts)
	}

	shifts := []struct {
		state    int
		terminal string
		next     int
	}{
		{state: 0, terminal: "(", next: 2},
		{state: 0, terminal: "word", next: 3},
		{state: 2, terminal: "(", next: 2},
		{state: 4, terminal: ")", next: 6},
		{state: 4, terminal: ";", next: 7},
		{state: 7, terminal: "word", next: 3},
	}
	for _, s := range shifts {
		next, ok := tab.Shift(s.state, s.terminal)
		if !ok || next != s.next {
			t.Errorf("unexpected shift from state %v on %v: want: %v, got: %v (%v)", s.state, s.terminal, s.next, next, ok)
		}
	}
	if _, ok := tab.Shift(0, ")"); ok {
		t.Errorf("state 0 must not shift )")
	}

	gotos := []struct {
		state       int
		nonTerminal string
		next        int
	}{
		{state: 0, nonTerminal: "S", next: 1},
		{state: 2, nonTerminal: "L", next: 4},
		{state: 2, nonTerminal: "S", next: 5},
		{state: 7, nonTerminal: "S", next: 8},
	}
	for _, g := range gotos {
		next, ok := tab.GoTo(g.state, g.nonTerminal)
		if !ok || next != g.next {
			t.Errorf("unexpected goto from state %v on %v: want: %v, got: %v (%v)", g.state, g.nonTerminal, g.next, next, ok)
		}
	}

	reductions := map[int]int{
		3: 1,
		5: 2,
		6: 0,
		8: 3,
	}
	for num := range tab.States {
		rule, ok := tab.Reduction(num)
		expected, reducible := reductions[num]
		if ok != reducible {
			t.Fatalf("state %v: unexpected reduction: %v", num, rule)
		}
		if ok && rule.Num != expected {
			t.Fatalf("state %v: unexpected rule: want: %v, got: %v", num, expected, rule.Num)
		}
	}

	if !reflect.DeepEqual(tab.Expected(0), []string{"(", "word"}) {
		t.Fatalf("unexpected expected terminals: %v", tab.Expected(0))
	}
	if len(tab.Expected(1)) != 0 {
		t.Fatalf("the accept state of this grammar shifts nothing: %v", tab.Expected(1))
	}
	if r := tab.Rule(-1); r.Name != "$" || len(r.Children) != 1 || r.Children[0].Symbol != NonTerminal("S") {
		t.Fatalf("unexpected accept rule: %v", r)
	}
}

func TestBuildParsingTable_Conflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tribble.grammar")
	defer teardown()

	binary := []*RawRule{
		rawObject("expr", "Add", KeyOf("left", nt("expr")), term("+"), KeyOf("right", nt("expr"))),
		rawObject("expr", "Num", KeyOf("value", term("num"))),
	}

	t.Run("shift/reduce conflicts prefer the shift by default", func(t *testing.T) {
		tab := testBuildTable(t, binary)
		if len(tab.Conflicts) != 1 {
			t.Fatalf("unexpected conflicts: %v", tab.Conflicts)
		}
		c := tab.Conflicts[0]
		if c.Kind != ConflictShiftReduce {
			t.Fatalf("unexpected conflict kind: %v", c.Kind)
		}
		if !reflect.DeepEqual(c.Terminals, []string{"+"}) {
			t.Fatalf("unexpected terminals: %v", c.Terminals)
		}
		if len(c.Rules) != 1 || c.Rules[0].Num != 0 {
			t.Fatalf("unexpected rules: %v", c.Rules)
		}
		if _, ok := tab.Shift(c.State, "+"); !ok {
			t.Fatalf("state %v must keep the shift on +", c.State)
		}
		if rule, ok := tab.Reduction(c.State); !ok || rule.Num != 0 {
			t.Fatalf("state %v must keep the reduction", c.State)
		}
	})

	t.Run("shift/reduce conflicts can be rejected", func(t *testing.T) {
		g := testCompile(t, binary...)
		tab, err := BuildParsingTable(g, WithConflictPolicy(RejectShiftReduce))
		if tab != nil {
			t.Fatalf("a table must not be returned on failure")
		}
		specErr := testSpecError(t, err, ErrShiftReduceConflict)
		if specErr.Rule != "expr" {
			t.Fatalf("unexpected rule: %v", specErr.Rule)
		}
		if !strings.Contains(specErr.Detail, "shift on +") {
			t.Fatalf("unexpected detail: %v", specErr.Detail)
		}
	})

	t.Run("an optional terminal conflicts with its empty alternative", func(t *testing.T) {
		tab := testBuildTable(t, []*RawRule{
			rawRule("a", opt(term("x")), term("y")),
		})
		if len(tab.Conflicts) != 1 || tab.Conflicts[0].State != 0 {
			t.Fatalf("unexpected conflicts: %v", tab.Conflicts)
		}
	})

	t.Run("reduce/reduce conflicts are errors", func(t *testing.T) {
		g := testCompile(t,
			rawRule("a", RootOf(nt("b"))),
			rawRule("a", RootOf(nt("c"))),
			rawRule("b", term("x")),
			rawRule("c", term("x")),
		)
		_, err := BuildParsingTable(g)
		specErr := testSpecError(t, err, ErrReduceReduceConflict)
		if specErr.Rule != "b" {
			t.Fatalf("unexpected rule: %v", specErr.Rule)
		}
	})

	t.Run("the accept item takes part in reduce/reduce conflicts", func(t *testing.T) {
		g := testCompile(t,
			rawList("s", ListOf(opt(nt("s"))), term("x")),
		)
		_, err := BuildParsingTable(g)
		specErr := testSpecError(t, err, ErrReduceReduceConflict)
		if specErr.Rule != "s?" {
			t.Fatalf("unexpected rule: %v", specErr.Rule)
		}
	})
}

func TestParsingTable_Fingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tribble.grammar")
	defer teardown()

	fingerprint := func(rules []*RawRule) string {
		t.Helper()
		fp, err := testBuildTable(t, rules).Fingerprint()
		if err != nil {
			t.Fatal(err)
		}
		return fp
	}

	fp1 := fingerprint(bracketRules())
	fp2 := fingerprint(bracketRules())
	if fp1 == "" || fp1 != fp2 {
		t.Fatalf("the same rules must yield the same fingerprint: %v, %v", fp1, fp2)
	}

	other := bracketRules()
	other[1] = rawObject("S", "Id", KeyOf("a", term("name")))
	if fp3 := fingerprint(other); fp3 == fp1 {
		t.Fatalf("different tables must yield different fingerprints: %v", fp3)
	}
}

func TestWriteGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tribble.grammar")
	defer teardown()

	tab := testBuildTable(t, bracketRules())
	var b strings.Builder
	err := WriteGraphViz(&b, tab)
	if err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, s := range []string{
		"digraph G {\n",
		`0 -> 1 [label="S"];`,
		`0 -> 2 [label="\"(\""];`,
		`4 -> 7 [label="\";\""];`,
		`0 [shape=box align=left label="0\l$ → • S\l`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("the output lacks %q:\n%v", s, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("the output must close the graph")
	}
}
