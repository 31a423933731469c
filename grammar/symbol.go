package grammar

import "strconv"

type SymbolKind string

const (
	SymbolKindNonTerminal = SymbolKind("non-terminal")
	SymbolKindTerminal    = SymbolKind("terminal")
)

func (k SymbolKind) String() string {
	return string(k)
}

// Symbol is a terminal or a non-terminal referenced by a rule. Terminals are named by the token kinds a lexer
// produces, non-terminals by rule names, including synthetic names generated for EBNF modifiers.
type Symbol struct {
	Kind SymbolKind
	Name string
}

func Terminal(name string) Symbol {
	return Symbol{
		Kind: SymbolKindTerminal,
		Name: name,
	}
}

func NonTerminal(name string) Symbol {
	return Symbol{
		Kind: SymbolKindNonTerminal,
		Name: name,
	}
}

func (s Symbol) IsTerminal() bool {
	return s.Kind == SymbolKindTerminal
}

func (s Symbol) IsNonTerminal() bool {
	return s.Kind == SymbolKindNonTerminal
}

// String renders a symbol the way it is written in a grammar: terminals as JSON strings and non-terminals as
// bare names.
func (s Symbol) String() string {
	if s.IsTerminal() {
		return strconv.Quote(s.Name)
	}
	return s.Name
}
