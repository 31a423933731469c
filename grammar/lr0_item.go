package grammar

import (
	"fmt"
	"strings"
)

// Item is an LR(0) item: a rule with a dot marking how much of its right-hand side has been recognized.
type Item struct {
	ID   int
	Rule *Rule
	Dot  int

	next *Item
}

// Wants returns the symbol right after the dot.
func (i *Item) Wants() (Symbol, bool) {
	if i.Dot >= len(i.Rule.Children) {
		return Symbol{}, false
	}
	return i.Rule.Children[i.Dot].Symbol, true
}

// Reducible reports whether the dot is at the end of the rule.
func (i *Item) Reducible() bool {
	return i.Dot == len(i.Rule.Children)
}

func (i *Item) isAccept() bool {
	return i.Rule.Num == acceptRuleNum
}

func (i *Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", i.Rule.Name)
	for n, c := range i.Rule.Children {
		if n == i.Dot {
			fmt.Fprintf(&b, " •")
		}
		fmt.Fprintf(&b, " %v", c.Symbol)
	}
	if i.Reducible() {
		fmt.Fprintf(&b, " •")
	}
	return b.String()
}

// itemCache hands out the items of each rule. All items of a rule are created at once and receive
// consecutive ids, so equal items are always the same pointer.
type itemCache struct {
	items  map[*Rule][]*Item
	nextID int
}

func newItemCache() *itemCache {
	return &itemCache{
		items:  map[*Rule][]*Item{},
		nextID: 1,
	}
}

func (c *itemCache) get(rule *Rule, dot int) *Item {
	items, ok := c.items[rule]
	if !ok {
		items = make([]*Item, len(rule.Children)+1)
		for d := range items {
			items[d] = &Item{
				ID:   c.nextID,
				Rule: rule,
				Dot:  d,
			}
			c.nextID++
			if d > 0 {
				items[d-1].next = items[d]
			}
		}
		c.items[rule] = items
	}
	return items[dot]
}
