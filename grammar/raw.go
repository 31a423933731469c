package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a location in grammar source text. The zero value means the location is unknown.
type Position struct {
	Row int
	Col int
}

type AnnotationKind string

const (
	AnnotationNone   = AnnotationKind("")
	AnnotationList   = AnnotationKind("list")
	AnnotationObject = AnnotationKind("object")
)

// Annotation is the explicit shape written after a rule name: nothing, `[]` or an object tag.
type Annotation struct {
	Kind AnnotationKind
	Tag  string
}

type RoleKind string

const (
	RoleRoot = RoleKind("root")
	RoleList = RoleKind("list")
	RoleKey  = RoleKind("key")
)

// Role marks a child as the root `:`, the list accumulator `[]:` or a named field `name:`.
type Role struct {
	Kind RoleKind
	Key  string
}

type Modifier string

const (
	ModifierOptional   = Modifier("?")
	ModifierOneOrMore  = Modifier("+")
	ModifierZeroOrMore = Modifier("*")
)

type RawChildKind string

const (
	RawChildTerminal    = RawChildKind("terminal")
	RawChildNonTerminal = RawChildKind("non-terminal")
	RawChildKeyed       = RawChildKind("keyed")
	RawChildModified    = RawChildKind("modified")
)

// RawChild is a child as written in grammar source.
type RawChild struct {
	Kind     RawChildKind
	Name     string
	Role     Role
	Modifier Modifier
	Inner    *RawChild
	Pos      Position
}

func RawTerminal(name string) *RawChild {
	return &RawChild{
		Kind: RawChildTerminal,
		Name: name,
	}
}

func RawNonTerminal(name string) *RawChild {
	return &RawChild{
		Kind: RawChildNonTerminal,
		Name: name,
	}
}

func RawKeyed(role Role, inner *RawChild) *RawChild {
	return &RawChild{
		Kind:  RawChildKeyed,
		Role:  role,
		Inner: inner,
		Pos:   inner.Pos,
	}
}

func RawModified(mod Modifier, inner *RawChild) *RawChild {
	return &RawChild{
		Kind:     RawChildModified,
		Modifier: mod,
		Inner:    inner,
		Pos:      inner.Pos,
	}
}

// RootOf marks a child as the root child.
func RootOf(c *RawChild) *RawChild {
	return RawKeyed(Role{Kind: RoleRoot}, c)
}

// ListOf marks a child as the list accumulator.
func ListOf(c *RawChild) *RawChild {
	return RawKeyed(Role{Kind: RoleList}, c)
}

// KeyOf binds a child to a field name.
func KeyOf(key string, c *RawChild) *RawChild {
	return RawKeyed(Role{Kind: RoleKey, Key: key}, c)
}

// role returns the role marker of a child, if any.
func (c *RawChild) role() (Role, bool) {
	if c.Kind == RawChildKeyed {
		return c.Role, true
	}
	return Role{}, false
}

// match strips the role marker.
func (c *RawChild) match() *RawChild {
	if c.Kind == RawChildKeyed {
		return c.Inner
	}
	return c
}

func (c *RawChild) String() string {
	switch c.Kind {
	case RawChildTerminal:
		return strconv.Quote(c.Name)
	case RawChildNonTerminal:
		return c.Name
	case RawChildModified:
		return c.Inner.String() + string(c.Modifier)
	case RawChildKeyed:
		switch c.Role.Kind {
		case RoleRoot:
			return ":" + c.Inner.String()
		case RoleList:
			return "[]:" + c.Inner.String()
		default:
			return c.Role.Key + ":" + c.Inner.String()
		}
	}
	return "?"
}

// RawRule is one rule as written in grammar source, before shape inference and EBNF desugaring.
type RawRule struct {
	Name       string
	Annotation Annotation
	Children   []*RawChild
	Pos        Position
}

func (r *RawRule) String() string {
	var b strings.Builder
	fmt.Fprint(&b, r.Name)
	switch r.Annotation.Kind {
	case AnnotationList:
		fmt.Fprint(&b, " []")
	case AnnotationObject:
		fmt.Fprintf(&b, " %v", r.Annotation.Tag)
	}
	fmt.Fprint(&b, " ->")
	for _, c := range r.Children {
		fmt.Fprintf(&b, " %v", c)
	}
	return b.String()
}
