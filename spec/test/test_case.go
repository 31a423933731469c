package test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"sort"
)

// Wildcard is an expected value matching any actual value.
const Wildcard = "_"

type ValueDiff struct {
	Path    string
	Message string
}

func newValueDiff(path string, message string) *ValueDiff {
	return &ValueDiff{
		Path:    path,
		Message: message,
	}
}

// Normalize converts a value into the form encoding/json decodes into interface{}: objects become maps,
// sequences []interface{} and numbers float64.
func Normalize(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var n interface{}
	err = json.Unmarshal(b, &n)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// DiffValue compares two normalized values. Paths are written in the JSONPath style rooted at `$`.
func DiffValue(expected, actual interface{}) []*ValueDiff {
	return diffValue("$", expected, actual)
}

func diffValue(path string, expected, actual interface{}) []*ValueDiff {
	if expected == Wildcard {
		return nil
	}

	switch exp := expected.(type) {
	case map[string]interface{}:
		act, ok := actual.(map[string]interface{})
		if !ok {
			return []*ValueDiff{
				newValueDiff(path, fmt.Sprintf("unexpected value: expected an object but got %v", describe(actual))),
			}
		}
		var diffs []*ValueDiff
		for _, k := range sortedKeys(exp) {
			a, ok := act[k]
			if !ok {
				diffs = append(diffs, newValueDiff(path, fmt.Sprintf("missing field '%v'", k)))
				continue
			}
			diffs = append(diffs, diffValue(fmt.Sprintf("%v.%v", path, k), exp[k], a)...)
		}
		for _, k := range sortedKeys(act) {
			if _, ok := exp[k]; !ok {
				diffs = append(diffs, newValueDiff(path, fmt.Sprintf("unexpected field '%v'", k)))
			}
		}
		return diffs
	case []interface{}:
		act, ok := actual.([]interface{})
		if !ok {
			return []*ValueDiff{
				newValueDiff(path, fmt.Sprintf("unexpected value: expected a list but got %v", describe(actual))),
			}
		}
		if len(act) != len(exp) {
			return []*ValueDiff{
				newValueDiff(path, fmt.Sprintf("unexpected element count: expected %v but got %v", len(exp), len(act))),
			}
		}
		var diffs []*ValueDiff
		for i, e := range exp {
			diffs = append(diffs, diffValue(fmt.Sprintf("%v[%v]", path, i), e, act[i])...)
		}
		return diffs
	}

	if !reflect.DeepEqual(expected, actual) {
		return []*ValueDiff{
			newValueDiff(path, fmt.Sprintf("unexpected value: expected %v but got %v", describe(expected), describe(actual))),
		}
	}
	return nil
}

func describe(v interface{}) string {
	switch v.(type) {
	case map[string]interface{}:
		return "an object"
	case []interface{}:
		return "a list"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TestCase is a source text and the value a grammar is expected to build from it. A test case file holds
// a description, the source and the expected value in JSON, separated by lines of three or more hyphens:
//
//	Addition is left-associative
//	---
//	1 + 2 + 3
//	---
//	{"tag": "Add", "fields": {"left": "_", "right": 3}}
//
// The string "_" in the expected value matches any value.
type TestCase struct {
	Description string
	Source      []byte
	Output      interface{}
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	var output interface{}
	err = json.Unmarshal(parts[2].buf, &output)
	if err != nil {
		lineOffset := parts[0].lineCount + parts[1].lineCount + 2
		return nil, fmt.Errorf("the expected value starting at line %v is not valid JSON: %w", lineOffset+1, err)
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Output:      output,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// An empty part is an empty slice, not nil.
		return []byte{}, 0, nil
	}
	buf.Write(line)
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		buf.WriteByte('\n')
		buf.Write(line)
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
