package grammar

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	verr "github.com/nihei9/tribble/error"
)

type compileConfig struct {
	sourceName string
	filePath   string
}

type CompileOption func(config *compileConfig)

// SourceName sets the name reported in compile errors.
func SourceName(name string) CompileOption {
	return func(config *compileConfig) {
		config.sourceName = name
	}
}

// FilePath sets the path of the grammar file. Compile errors quote the offending line of the file.
func FilePath(path string) CompileOption {
	return func(config *compileConfig) {
		config.filePath = path
	}
}

// Compiler turns raw rules into a Grammar. A Compiler is not safe for concurrent use; the memo of synthetic
// rules is reset on every Compile call.
type Compiler struct {
	config *compileConfig

	synthetic []*Rule
	memo      map[string]struct{}
	sources   map[*Rule]*RawRule
}

func NewCompiler(opts ...CompileOption) *Compiler {
	config := &compileConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return &Compiler{
		config: config,
	}
}

// Compile compiles raw rules with a fresh Compiler.
func Compile(rules []*RawRule, opts ...CompileOption) (*Grammar, error) {
	return NewCompiler(opts...).Compile(rules)
}

func (c *Compiler) Compile(rules []*RawRule) (*Grammar, error) {
	c.synthetic = nil
	c.memo = map[string]struct{}{}
	c.sources = map[*Rule]*RawRule{}

	if len(rules) == 0 {
		return nil, &verr.SpecError{
			Cause:      ErrNoRules,
			SourceName: c.config.sourceName,
			Child:      indexNil,
		}
	}

	g := newGrammar()
	for _, raw := range rules {
		if !isUserName(raw.Name) {
			return nil, c.errorAt(ErrInvalidName, raw, indexNil, fmt.Sprintf("'%v' is reserved for synthetic rules", raw.Name))
		}
		if len(raw.Children) == 1 {
			m := raw.Children[0].match()
			if m.Kind == RawChildNonTerminal && m.Name == raw.Name {
				return nil, c.errorAt(ErrDirectRecursion, raw, 0, raw.String())
			}
		}

		shape, err := c.buildShape(raw)
		if err != nil {
			return nil, err
		}

		children := make([]*Child, len(raw.Children))
		for i, rc := range raw.Children {
			sym, err := c.expandChild(rc.match())
			if err != nil {
				return nil, c.errorAt(err, raw, i, rc.String())
			}
			children[i] = &Child{
				Symbol: sym,
				Index:  i,
			}
		}

		rule := &Rule{
			Name:     raw.Name,
			Shape:    shape,
			Children: children,
		}
		g.add(rule)
		c.sources[rule] = raw
	}

	// Synthetic rules always follow the user rules so that user rule numbers stay stable.
	for _, rule := range c.synthetic {
		g.add(rule)
	}

	err := c.validate(g)
	if err != nil {
		return nil, err
	}

	tracer().Debugf("compiled %v rules (%v synthetic) with start symbol %v", len(g.Rules), len(c.synthetic), g.Start())

	return g, nil
}

// isUserName reports whether a name stays clear of the spelling of synthetic names.
func isUserName(name string) bool {
	if name == "" || name == acceptRuleName {
		return false
	}
	if strings.HasPrefix(name, "%") {
		return false
	}
	return !strings.ContainsAny(name, "?+*")
}

func (c *Compiler) buildShape(raw *RawRule) (NodeShape, error) {
	switch raw.Annotation.Kind {
	case AnnotationList:
		return c.buildListShape(raw)
	case AnnotationObject:
		return c.buildObjectShape(raw)
	default:
		return c.buildRootShape(raw)
	}
}

func (c *Compiler) buildRootShape(raw *RawRule) (NodeShape, error) {
	root := indexNil
	for i, child := range raw.Children {
		role, ok := child.role()
		if !ok {
			continue
		}
		switch role.Kind {
		case RoleList:
			return NodeShape{}, c.errorAt(ErrMisplacedList, raw, i, "hint: add the list marker to the rule: "+raw.Name+" [] -> ...")
		case RoleKey:
			return NodeShape{}, c.errorAt(ErrMisplacedNamedChild, raw, i, "hint: add an object name to the rule: "+raw.Name+" Object -> ...")
		}
		if root != indexNil {
			return NodeShape{}, c.errorAt(ErrMultipleRootChildren, raw, i, "hint: make this an object rule")
		}
		root = i
	}

	if root == indexNil {
		return NullShape(), nil
	}
	return RootShape(root), nil
}

func (c *Compiler) buildListShape(raw *RawRule) (NodeShape, error) {
	shape := ListShape(indexNil, indexNil)
	for i, child := range raw.Children {
		role, ok := child.role()
		if !ok {
			continue
		}
		switch role.Kind {
		case RoleRoot:
			if shape.HasRoot() {
				detail := "hint: list rules have up to one list child and one root child"
				if !shape.HasList() {
					detail = "hint: make this the list child?"
				}
				return NodeShape{}, c.errorAt(ErrMultipleRootChildren, raw, i, detail)
			}
			shape.Root = i
		case RoleList:
			if shape.HasList() {
				detail := "hint: list rules have up to one list child and one root child"
				if !shape.HasRoot() {
					detail = "hint: make this the root child?"
				}
				return NodeShape{}, c.errorAt(ErrMultipleListChildren, raw, i, detail)
			}
			shape.List = i
		default:
			return NodeShape{}, c.errorAt(ErrMisplacedNamedChild, raw, i, "named child in list rule")
		}
	}
	return shape, nil
}

func (c *Compiler) buildObjectShape(raw *RawRule) (NodeShape, error) {
	var keys []Key
	seen := map[string]struct{}{}
	for i, child := range raw.Children {
		role, ok := child.role()
		if !ok {
			continue
		}
		switch role.Kind {
		case RoleRoot:
			return NodeShape{}, c.errorAt(ErrMisplacedRoot, raw, i, "hint: add an attribute name to the child")
		case RoleList:
			return NodeShape{}, c.errorAt(ErrMisplacedList, raw, i, "list children are only allowed in list rules")
		}
		if _, dup := seen[role.Key]; dup {
			return NodeShape{}, c.errorAt(ErrDuplicateKey, raw, i, fmt.Sprintf("'%v'", role.Key))
		}
		seen[role.Key] = struct{}{}
		keys = append(keys, Key{
			Name:  role.Key,
			Index: i,
		})
	}
	return ObjectShape(raw.Annotation.Tag, keys), nil
}

// expandChild returns the symbol a child refers to. Children with EBNF modifiers are replaced with
// references to synthetic non-terminals; the rules of each synthetic non-terminal are generated once per
// compile.
func (c *Compiler) expandChild(child *RawChild) (Symbol, error) {
	switch child.Kind {
	case RawChildTerminal:
		return Terminal(child.Name), nil
	case RawChildNonTerminal:
		return NonTerminal(child.Name), nil
	case RawChildKeyed:
		return Symbol{}, ErrNestedRole
	}

	inner, err := c.expandChild(child.Inner)
	if err != nil {
		return Symbol{}, err
	}
	name := syntheticName(inner, child.Modifier)
	sym := NonTerminal(name)
	if _, ok := c.memo[name]; ok {
		return sym, nil
	}
	c.memo[name] = struct{}{}

	switch child.Modifier {
	case ModifierOptional:
		c.addSynthetic(name, RootShape(0), inner)
		c.addSynthetic(name, NullShape())
	case ModifierOneOrMore:
		// The base case is a one-element list so that the recursive case has a list to append to.
		c.addSynthetic(name, ListShape(indexNil, 0), inner)
		c.addSynthetic(name, ListShape(0, 1), sym, inner)
	case ModifierZeroOrMore:
		c.addSynthetic(name, ListShape(indexNil, indexNil))
		c.addSynthetic(name, ListShape(0, 1), sym, inner)
	default:
		return Symbol{}, fmt.Errorf("unknown modifier: %v", child.Modifier)
	}

	tracer().Debugf("expanded %v%v into %v", inner, child.Modifier, name)

	return sym, nil
}

// syntheticName spells the non-terminal generated for a modifier. Names derived from terminals carry a `%`
// prefix, which user rule names cannot have. A terminal spelled with anything but letters, digits and `_` is
// quoted, so the modifiers always trail the atom: `"*"*?` becomes `%"*"*?` and `"**"?` becomes `%"**"?`.
func syntheticName(inner Symbol, mod Modifier) string {
	if inner.IsTerminal() {
		return "%" + syntheticAtom(inner.Name) + string(mod)
	}
	return inner.Name + string(mod)
}

func syntheticAtom(terminal string) string {
	if terminal == "" {
		return strconv.Quote(terminal)
	}
	for _, r := range terminal {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return strconv.Quote(terminal)
		}
	}
	return terminal
}

func (c *Compiler) addSynthetic(name string, shape NodeShape, syms ...Symbol) {
	children := make([]*Child, len(syms))
	for i, sym := range syms {
		children[i] = &Child{
			Symbol: sym,
			Index:  i,
		}
	}
	c.synthetic = append(c.synthetic, &Rule{
		Name:      name,
		Shape:     shape,
		Children:  children,
		Synthetic: true,
	})
}

func (c *Compiler) errorAt(cause error, raw *RawRule, child int, detail string) *verr.SpecError {
	pos := raw.Pos
	if child >= 0 && child < len(raw.Children) && raw.Children[child].Pos.Row != 0 {
		pos = raw.Children[child].Pos
	}
	return &verr.SpecError{
		Cause:      cause,
		Detail:     detail,
		FilePath:   c.config.filePath,
		SourceName: c.config.sourceName,
		Rule:       raw.Name,
		Child:      child,
		Row:        pos.Row,
		Col:        pos.Col,
	}
}

// errorAtRule reports an error found in a compiled rule. Synthetic rules are reported without a source
// position.
func (c *Compiler) errorAtRule(cause error, rule *Rule, child int, detail string) *verr.SpecError {
	if raw, ok := c.sources[rule]; ok {
		return c.errorAt(cause, raw, child, detail)
	}
	return &verr.SpecError{
		Cause:      cause,
		Detail:     detail,
		FilePath:   c.config.filePath,
		SourceName: c.config.sourceName,
		Rule:       rule.Name,
		Child:      child,
	}
}
