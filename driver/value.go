package driver

import (
	"github.com/nihei9/tribble/grammar"
)

// Object is the value of an object-shaped rule.
type Object struct {
	Tag    string                 `json:"tag"`
	Fields map[string]interface{} `json:"fields"`
}

// evaluate builds the value of a rule from the values of its children. A list value may be extended in place
// and returned, so intermediate lists must not be retained.
func evaluate(shape grammar.NodeShape, children []interface{}) interface{} {
	switch shape.Kind {
	case grammar.ShapeRoot:
		return children[shape.Root]
	case grammar.ShapeObject:
		fields := make(map[string]interface{}, len(shape.Keys))
		for _, k := range shape.Keys {
			fields[k.Name] = children[k.Index]
		}
		return &Object{
			Tag:    shape.Tag,
			Fields: fields,
		}
	case grammar.ShapeList:
		switch {
		case shape.HasList() && shape.HasRoot():
			list, _ := children[shape.List].([]interface{})
			return append(list, children[shape.Root])
		case shape.HasRoot():
			return []interface{}{children[shape.Root]}
		case shape.HasList():
			list, _ := children[shape.List].([]interface{})
			if list == nil {
				return []interface{}{}
			}
			return list
		}
		return []interface{}{}
	}
	return nil
}
