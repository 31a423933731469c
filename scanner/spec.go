package scanner

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueFunc converts a lexeme into the value a token carries.
type ValueFunc func(lexeme string) (interface{}, error)

// Entry defines one terminal. Entries are tried in order; when two entries match the same longest lexeme,
// the earlier one wins.
type Entry struct {
	Terminal string `yaml:"terminal"`
	Pattern  string `yaml:"pattern"`
	Literal  string `yaml:"literal"`
	Skip     bool   `yaml:"skip"`

	// Convert names a built-in ValueFunc. See Converter.
	Convert string `yaml:"value"`

	Value ValueFunc `yaml:"-"`
}

// LiteralEntry defines a terminal matching a fixed text.
func LiteralEntry(terminal, text string) *Entry {
	return &Entry{
		Terminal: terminal,
		Literal:  text,
	}
}

// PatternEntry defines a terminal matching a regular expression.
func PatternEntry(terminal, pattern string) *Entry {
	return &Entry{
		Terminal: terminal,
		Pattern:  pattern,
	}
}

// SkipEntry defines input the scanners consume without producing a token.
func SkipEntry(name, pattern string) *Entry {
	return &Entry{
		Terminal: name,
		Pattern:  pattern,
		Skip:     true,
	}
}

func (e *Entry) pattern() string {
	if e.Literal != "" {
		return escapePattern(e.Literal)
	}
	return e.Pattern
}

func (e *Entry) value(lexeme string) (interface{}, error) {
	if e.Value == nil {
		return lexeme, nil
	}
	v, err := e.Value(lexeme)
	if err != nil {
		return nil, fmt.Errorf("%v: cannot convert %q: %w", e.Terminal, lexeme, err)
	}
	return v, nil
}

type Spec struct {
	Entries []*Entry `yaml:"entries"`
}

func (s *Spec) validate() error {
	if len(s.Entries) == 0 {
		return fmt.Errorf("a lexer spec needs at least one entry")
	}
	seen := map[string]struct{}{}
	for i, e := range s.Entries {
		if e.Terminal == "" {
			return fmt.Errorf("entry #%v: a terminal name is missing", i)
		}
		if _, ok := seen[e.Terminal]; ok {
			return fmt.Errorf("entry #%v: duplicate terminal: %v", i, e.Terminal)
		}
		seen[e.Terminal] = struct{}{}
		if (e.Pattern == "") == (e.Literal == "") {
			return fmt.Errorf("%v: an entry needs either a pattern or a literal", e.Terminal)
		}
	}
	return nil
}

// LoadSpecYAML reads a Spec:
//
//	entries:
//	  - terminal: "{"
//	    literal: "{"
//	  - terminal: NUMBER
//	    pattern: "[0-9]+"
//	    value: number
//	  - terminal: space
//	    pattern: "[ \t\n\r]+"
//	    skip: true
func LoadSpecYAML(r io.Reader) (*Spec, error) {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	s := &Spec{}
	err := d.Decode(s)
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("a lexer spec needs at least one entry")
		}
		return nil, err
	}
	for _, e := range s.Entries {
		if e.Convert == "" {
			continue
		}
		f, ok := Converter(e.Convert)
		if !ok {
			return nil, fmt.Errorf("%v: unknown value converter: %v", e.Terminal, e.Convert)
		}
		e.Value = f
	}
	err = s.validate()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Converter returns a built-in ValueFunc:
//
//	lexeme   the lexeme itself
//	string   a JSON string literal, unquoted
//	number   a float64
//	int      an int64
//	bool     true when the lexeme is "true"
//	null     nil
func Converter(name string) (ValueFunc, bool) {
	f, ok := converters[name]
	return f, ok
}

var converters = map[string]ValueFunc{
	"lexeme": func(lexeme string) (interface{}, error) {
		return lexeme, nil
	},
	"string": func(lexeme string) (interface{}, error) {
		var s string
		err := json.Unmarshal([]byte(lexeme), &s)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
	"number": func(lexeme string) (interface{}, error) {
		return strconv.ParseFloat(lexeme, 64)
	},
	"int": func(lexeme string) (interface{}, error) {
		return strconv.ParseInt(lexeme, 10, 64)
	},
	"bool": func(lexeme string) (interface{}, error) {
		return lexeme == "true", nil
	},
	"null": func(lexeme string) (interface{}, error) {
		return nil, nil
	},
}

var patternReplacer = strings.NewReplacer(
	`.`, `\.`,
	`*`, `\*`,
	`+`, `\+`,
	`?`, `\?`,
	`|`, `\|`,
	`(`, `\(`,
	`)`, `\)`,
	`[`, `\[`,
	`\`, `\\`,
)

// escapePattern escapes the characters both maleeni and lexmachine treat as operators.
// For example, escapePattern(`+`) returns `\+`.
func escapePattern(s string) string {
	return patternReplacer.Replace(s)
}
