package grammar

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

var plainDotID = regexp.MustCompile(`^[0-9]+$|^[a-zA-Zε]+$`)

// dotString quotes a label for GraphViz. Multi-line labels are left-aligned.
func dotString(s string) string {
	if plainDotID.MatchString(s) {
		return s
	}
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\l`) + `\l`
	return `"` + s + `"`
}

// WriteGraphViz writes the automaton of a parsing table in the dot language.
func WriteGraphViz(w io.Writer, t *ParsingTable) error {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph G {\n")
	fmt.Fprintf(&b, "rankdir=LR;\n")
	fmt.Fprintf(&b, "node [fontname=\"Helvetica\"];\n")
	fmt.Fprintf(&b, "edge [fontname=\"Times\"];\n")
	fmt.Fprintf(&b, "\n")
	for _, s := range t.States {
		label := []string{fmt.Sprintf("%v", s.Num)}
		for _, item := range s.Items {
			label = append(label, item.String())
		}
		fmt.Fprintf(&b, "%v [shape=box align=left label=%v];\n", s.Num, dotString(strings.Join(label, "\n")))
		for _, e := range s.Edges {
			fmt.Fprintf(&b, "%v -> %v [label=%q];\n", s.Num, e.To.Num, e.Symbol.String())
		}
		fmt.Fprintf(&b, "\n")
	}
	fmt.Fprintf(&b, "}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
