// This file converts cty literal values into the two forms the compiler
// needs: a native Go value for folded config maps, and a textual rendering
// for advisory source capture.
package flowast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Native recursively converts a cty.Value to its most natural Go
// counterpart: string, float64, bool, []any or map[string]any. Null and
// unknown values become nil.
func Native(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		// float64 is the JSON-native representation for numbers, which keeps
		// folded config values stable across an encode/decode round trip.
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert cty.Number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			nv, err := Native(ev)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nv)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, ev := it.Element()
			keyStr := key.AsString()
			nv, err := Native(ev)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", keyStr, err)
			}
			goMap[keyStr] = nv
		}
		return goMap, nil

	default:
		return nil, fmt.Errorf("unsupported cty type for native conversion: %s", ty.FriendlyName())
	}
}

// renderValue produces the advisory textual form of a literal value.
func renderValue(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	if !v.IsKnown() {
		return "unknown"
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return strconv.Quote(v.AsString())

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			return bf.Text('f', 0)
		}
		return bf.Text('g', -1)

	case ty == cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var parts []string
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			parts = append(parts, renderValue(ev))
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case ty.IsObjectType() || ty.IsMapType():
		var parts []string
		it := v.ElementIterator()
		for it.Next() {
			key, ev := it.Element()
			parts = append(parts, renderValue(key)+": "+renderValue(ev))
		}
		return "{" + strings.Join(parts, ", ") + "}"

	default:
		return v.GoString()
	}
}
