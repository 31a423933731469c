package grammar

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

const (
	acceptRuleName = "$"
	acceptRuleNum  = -1
)

// Edge is a transition of the automaton.
type Edge struct {
	Symbol Symbol
	To     *State
}

// State is a state of the LR(0) automaton. Kernel holds the items the state was created from; Items holds
// the kernel followed by its closure.
type State struct {
	Num    int
	Kernel []*Item
	Items  []*Item
	Edges  []*Edge
	Shift  map[string]int
	GoTo   map[string]int
	Reduce *Rule
}

func (s *State) edge(sym Symbol) (*State, bool) {
	for _, e := range s.Edges {
		if e.Symbol == sym {
			return e.To, true
		}
	}
	return nil, false
}

type transition struct {
	symbol Symbol
	seed   []*Item
}

type lr0Automaton struct {
	states []*State
	accept *Rule
}

type automatonBuilder struct {
	g     *Grammar
	items *itemCache
}

func genLR0Automaton(g *Grammar) (*lr0Automaton, error) {
	if g.Start() == "" {
		return nil, ErrNoRules
	}

	b := &automatonBuilder{
		g:     g,
		items: newItemCache(),
	}
	accept := &Rule{
		Num:   acceptRuleNum,
		Name:  acceptRuleName,
		Shape: RootShape(0),
		Children: []*Child{
			{
				Symbol: NonTerminal(g.Start()),
				Index:  0,
			},
		},
	}

	startItem := b.items.get(accept, 0)
	start := &State{
		Kernel: []*Item{startItem},
		Items:  b.predict([]*Item{startItem}),
	}

	states := arraylist.New()
	states.Add(start)
	bySeed := map[string]*State{}
	// The list grows while it is walked.
	for i := 0; i < states.Size(); i++ {
		v, _ := states.Get(i)
		state := v.(*State)
		for _, t := range b.transitions(state.Items) {
			key := seedKey(t.seed)
			dest, ok := bySeed[key]
			if !ok {
				dest = &State{
					Num:    states.Size(),
					Kernel: t.seed,
					Items:  b.predict(t.seed),
				}
				states.Add(dest)
				bySeed[key] = dest
				tracer().Debugf("state %v: seed %v", dest.Num, key)
			}
			state.Edges = append(state.Edges, &Edge{
				Symbol: t.symbol,
				To:     dest,
			})
		}
	}

	ss := make([]*State, states.Size())
	for i, v := range states.Values() {
		ss[i] = v.(*State)
	}

	// The state reached from the start state on the start symbol always gets number 1.
	acc, ok := start.edge(NonTerminal(g.Start()))
	if !ok {
		return nil, fmt.Errorf("the start state has no transition on the start symbol %v", g.Start())
	}
	ss[acc.Num], ss[1] = ss[1], ss[acc.Num]
	for i, s := range ss {
		s.Num = i
	}

	tracer().Infof("LR(0) automaton has %v states", len(ss))

	return &lr0Automaton{
		states: ss,
		accept: accept,
	}, nil
}

// predict returns the closure of a seed. Every non-terminal is expanded at most once per closure, which also
// stops the expansion on circular references.
func (b *automatonBuilder) predict(seed []*Item) []*Item {
	items := make([]*Item, len(seed))
	copy(items, seed)
	expanded := treeset.NewWith(utils.StringComparator)
	for i := 0; i < len(items); i++ {
		sym, ok := items[i].Wants()
		if !ok || !sym.IsNonTerminal() {
			continue
		}
		if expanded.Contains(sym.Name) {
			continue
		}
		expanded.Add(sym.Name)
		for _, alt := range b.g.Alternatives(sym.Name) {
			items = append(items, b.items.get(alt, 0))
		}
	}
	return items
}

// transitions groups the items of a closure by the symbol they want, in order of first appearance, and
// advances each item past that symbol.
func (b *automatonBuilder) transitions(items []*Item) []*transition {
	var ts []*transition
	bySym := map[Symbol]*transition{}
	for _, item := range items {
		sym, ok := item.Wants()
		if !ok {
			continue
		}
		t, ok := bySym[sym]
		if !ok {
			t = &transition{
				symbol: sym,
			}
			bySym[sym] = t
			ts = append(ts, t)
		}
		t.seed = append(t.seed, item.next)
	}
	return ts
}

// seedKey signs a seed with its sorted item ids.
func seedKey(seed []*Item) string {
	ids := treeset.NewWith(utils.IntComparator)
	for _, item := range seed {
		ids.Add(item.ID)
	}
	var b strings.Builder
	for i, id := range ids.Values() {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%v", id)
	}
	return b.String()
}
