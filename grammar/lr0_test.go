package grammar

import (
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGenLR0Automaton(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tribble.grammar")
	defer teardown()

	g := testCompile(t, bracketRules()...)
	automaton, err := genLR0Automaton(g)
	if err != nil {
		t.Fatalf("failed to create a LR0 automaton: %v", err)
	}

	expectedKernels := map[int][]string{
		0: {`$ → • S`},
		1: {`$ → S •`},
		2: {`S → "(" • L ")"`},
		3: {`S → "word" •`},
		4: {`S → "(" L • ")"`, `L → L • ";" S`},
		5: {`L → S •`},
		6: {`S → "(" L ")" •`},
		7: {`L → L ";" • S`},
		8: {`L → L ";" S •`},
	}
	if len(automaton.states) != len(expectedKernels) {
		t.Fatalf("unexpected state count: want: %v, got: %v", len(expectedKernels), len(automaton.states))
	}
	for num, state := range automaton.states {
		if state.Num != num {
			t.Fatalf("unexpected state number: want: %v, got: %v", num, state.Num)
		}
		var kernel []string
		for _, item := range state.Kernel {
			kernel = append(kernel, item.String())
		}
		if !reflect.DeepEqual(kernel, expectedKernels[num]) {
			t.Errorf("state %v: unexpected kernel:\nwant: %q\ngot:  %q", num, expectedKernels[num], kernel)
		}
	}

	expectedEdges := map[int]map[string]int{
		0: {`S`: 1, `"("`: 2, `"word"`: 3},
		2: {`L`: 4, `S`: 5, `"("`: 2, `"word"`: 3},
		4: {`")"`: 6, `";"`: 7},
		7: {`S`: 8, `"("`: 2, `"word"`: 3},
	}
	for _, state := range automaton.states {
		edges := map[string]int{}
		for _, e := range state.Edges {
			edges[e.Symbol.String()] = e.To.Num
		}
		expected, ok := expectedEdges[state.Num]
		if !ok {
			expected = map[string]int{}
		}
		if !reflect.DeepEqual(edges, expected) {
			t.Errorf("state %v: unexpected edges: want: %v, got: %v", state.Num, expected, edges)
		}
	}

	// The closure of state 2 predicts every alternative of L and S.
	var items []string
	for _, item := range automaton.states[2].Items {
		items = append(items, item.String())
	}
	expectedItems := []string{
		`S → "(" • L ")"`,
		`L → • S`,
		`L → • L ";" S`,
		`S → • "(" L ")"`,
		`S → • "word"`,
	}
	if !reflect.DeepEqual(items, expectedItems) {
		t.Fatalf("unexpected closure:\nwant: %q\ngot:  %q", expectedItems, items)
	}
}

func TestGenLR0Automaton_Properties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tribble.grammar")
	defer teardown()

	grammars := map[string][]*RawRule{
		"brackets": bracketRules(),
		"modifiers": {
			rawList("doc", ListOf(star(nt("item"))), RootOf(opt(term("end")))),
			rawObject("item", "Item", KeyOf("key", term("id")), term("="), KeyOf("values", plus(term("v")))),
		},
		"binary operator": {
			rawObject("expr", "Add", KeyOf("left", nt("expr")), term("+"), KeyOf("right", nt("expr"))),
			rawObject("expr", "Num", KeyOf("value", term("num"))),
		},
	}
	for caption, rules := range grammars {
		t.Run(caption, func(t *testing.T) {
			g := testCompile(t, rules...)
			automaton, err := genLR0Automaton(g)
			if err != nil {
				t.Fatal(err)
			}
			states := automaton.states

			start := states[0].Kernel
			if len(start) != 1 || !start[0].isAccept() || start[0].Dot != 0 {
				t.Fatalf("state 0 must hold only the start item; got: %v", start)
			}
			if to, ok := states[0].edge(NonTerminal(g.Start())); !ok || to.Num != 1 {
				t.Fatalf("the start state must go to state 1 on the start symbol")
			}

			ids := map[int]*Item{}
			for num, state := range states {
				if state.Num != num {
					t.Fatalf("unexpected state number: want: %v, got: %v", num, state.Num)
				}
				for i, item := range state.Kernel {
					if state.Items[i] != item {
						t.Fatalf("state %v: the items must start with the kernel", num)
					}
				}
				for _, item := range state.Items {
					if other, ok := ids[item.ID]; ok && other != item {
						t.Fatalf("items %v and %v share id %v", other, item, item.ID)
					}
					ids[item.ID] = item
				}
				for _, e := range state.Edges {
					for _, item := range e.To.Kernel {
						if item.Dot == 0 || item.Rule.Children[item.Dot-1].Symbol != e.Symbol {
							t.Fatalf("state %v: item %v cannot be reached on %v", e.To.Num, item, e.Symbol)
						}
					}
				}
			}
			for _, item := range ids {
				if item.next != nil && item.next.ID != item.ID+1 {
					t.Fatalf("items of a rule must have consecutive ids: %v (%v), %v (%v)", item, item.ID, item.next, item.next.ID)
				}
			}
		})
	}
}
