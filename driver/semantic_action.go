package driver

import (
	"fmt"
	"io"
)

// SemanticActionSet observes the steps of a parser. The parser builds its result value on its own; a
// SemanticActionSet can build additional structures such as a syntax tree.
type SemanticActionSet interface {
	// Shift runs when the parser shifts a terminal. `row` and `col` are zero when the caller fed the
	// terminal without a position.
	Shift(terminal string, value interface{}, row, col int)

	// Reduce runs when the parser reduces the last `n` symbols to a rule named `name`.
	Reduce(name string, n int)

	// Accept runs when the parser accepts an input.
	Accept()
}

var _ SemanticActionSet = &SyntaxTreeActionSet{}

type Node struct {
	KindName string
	Text     string
	Row      int
	Col      int
	Children []*Node
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	if node.Text != "" {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

// SyntaxTreeActionSet builds a concrete syntax tree: one node per shifted terminal and per reduced rule.
type SyntaxTreeActionSet struct {
	cst   *Node
	stack []*Node
}

func NewSyntaxTreeActionSet() *SyntaxTreeActionSet {
	return &SyntaxTreeActionSet{}
}

func (a *SyntaxTreeActionSet) Shift(terminal string, value interface{}, row, col int) {
	text := ""
	if value != nil {
		text = fmt.Sprint(value)
	}
	a.stack = append(a.stack, &Node{
		KindName: terminal,
		Text:     text,
		Row:      row,
		Col:      col,
	})
}

func (a *SyntaxTreeActionSet) Reduce(name string, n int) {
	// When a rule is empty, `n` is 0 and the node has no children.
	children := make([]*Node, n)
	copy(children, a.stack[len(a.stack)-n:])
	a.stack = a.stack[:len(a.stack)-n]

	node := &Node{
		KindName: name,
		Children: children,
	}
	if n > 0 {
		node.Row = children[0].Row
		node.Col = children[0].Col
	}
	a.stack = append(a.stack, node)
}

func (a *SyntaxTreeActionSet) Accept() {
	if len(a.stack) == 0 {
		return
	}
	a.cst = a.stack[len(a.stack)-1]
	a.stack = nil
}

func (a *SyntaxTreeActionSet) CST() *Node {
	return a.cst
}
