package test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestDiffValue(t *testing.T) {
	tests := []struct {
		expected string
		actual   string
		paths    []string
	}{
		{
			expected: `null`,
			actual:   `null`,
		},
		{
			expected: `{"tag": "Add", "fields": {"left": 1, "right": [1, "a"]}}`,
			actual:   `{"fields": {"right": [1, "a"], "left": 1}, "tag": "Add"}`,
		},
		{
			expected: `{"tag": "Add", "fields": "_"}`,
			actual:   `{"tag": "Add", "fields": {"left": 1}}`,
		},
		{
			expected: `["_", 2]`,
			actual:   `[{"a": null}, 2]`,
		},
		{
			expected: `1`,
			actual:   `"1"`,
			paths:    []string{"$"},
		},
		{
			expected: `{"tag": "Add", "fields": {"left": 1, "right": 2}}`,
			actual:   `{"tag": "Sub", "fields": {"left": 1, "right": 3}}`,
			paths:    []string{"$.fields.right", "$.tag"},
		},
		{
			expected: `{"a": 1, "b": 2}`,
			actual:   `{"b": 2, "c": 3}`,
			paths:    []string{"$", "$"},
		},
		{
			expected: `[1, [2, 3]]`,
			actual:   `[1, [2]]`,
			paths:    []string{"$[1]"},
		},
		{
			expected: `[1, {"x": true}]`,
			actual:   `[1, {"x": false}]`,
			paths:    []string{"$[1].x"},
		},
		{
			expected: `[]`,
			actual:   `{}`,
			paths:    []string{"$"},
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			exp := testParseJSON(t, tt.expected)
			act := testParseJSON(t, tt.actual)
			var paths []string
			for _, d := range DiffValue(exp, act) {
				paths = append(paths, d.Path)
			}
			if !reflect.DeepEqual(paths, tt.paths) {
				t.Fatalf("unexpected diffs: want: %v, got: %v", tt.paths, paths)
			}
		})
	}
}

func testParseJSON(t *testing.T, src string) interface{} {
	t.Helper()

	c, err := ParseTestCase(strings.NewReader("---\n---\n" + src))
	if err != nil {
		t.Fatal(err)
	}
	return c.Output
}

func TestNormalize(t *testing.T) {
	type object struct {
		Tag    string                 `json:"tag"`
		Fields map[string]interface{} `json:"fields"`
	}
	v, err := Normalize([]interface{}{
		int64(1),
		&object{
			Tag: "A",
			Fields: map[string]interface{}{
				"x": nil,
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := []interface{}{
		float64(1),
		map[string]interface{}{
			"tag": "A",
			"fields": map[string]interface{}{
				"x": nil,
			},
		},
	}
	if !reflect.DeepEqual(v, expected) {
		t.Fatalf("unexpected value: want: %#v, got: %#v", expected, v)
	}
}

func TestParseTestCase(t *testing.T) {
	tests := []struct {
		src      string
		tc       *TestCase
		parseErr bool
	}{
		{
			src: `test
---
foo
---
"foo"
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("foo"),
				Output:      "foo",
			},
		},
		{
			src: `
test

---

foo

---

["foo"]

`,
			tc: &TestCase{
				Description: "\ntest\n",
				Source:      []byte("\nfoo\n"),
				Output:      []interface{}{"foo"},
			},
		},
		// The length of a part delimiter may be greater than 3.
		{
			src: `
test
----
foo
----
null
`,
			tc: &TestCase{
				Description: "\ntest",
				Source:      []byte("foo"),
				Output:      nil,
			},
		},
		// The description part may be empty.
		{
			src: `----
foo
----
{"tag": "Foo", "fields": {}}
`,
			tc: &TestCase{
				Description: "",
				Source:      []byte("foo"),
				Output: map[string]interface{}{
					"tag":    "Foo",
					"fields": map[string]interface{}{},
				},
			},
		},
		{
			src: `test
---
foo
`,
			parseErr: true,
		},
		{
			src: `test
---
foo
---
(foo)
`,
			parseErr: true,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			tc, err := ParseTestCase(strings.NewReader(tt.src))
			if tt.parseErr {
				if err == nil {
					t.Fatalf("an expected error didn't occur")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(tc, tt.tc) {
				t.Fatalf("unexpected test case: want: %#v, got: %#v", tt.tc, tc)
			}
		})
	}
}
