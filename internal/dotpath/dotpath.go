// Package dotpath converts between dotted column paths and nested maps.
// A path such as "address.city" names the value found by descending into
// the "address" map and reading its "city" entry.
package dotpath

import (
	"strings"

	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// Separator joins path segments.
const Separator = "."

// Flatten joins a path prefix and a field name. An empty prefix returns field.
func Flatten(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + Separator + field
}

// AsMap reports whether v is a nested map and returns it as a RowMap.
// Scalars, nil, and every other type return false.
func AsMap(v any) (types.RowMap, bool) {
	switch m := v.(type) {
	case types.RowMap:
		return m, true
	case map[string]any:
		return types.RowMap(m), true
	default:
		return nil, false
	}
}

// ValueOrNil resolves path by descending through nested maps. It returns
// false when a segment is missing or an intermediate value is not a map.
func ValueOrNil(row types.RowMap, path string) (any, bool) {
	if row == nil {
		return nil, false
	}
	head, rest, nested := strings.Cut(path, Separator)
	v, ok := row[head]
	if !ok {
		return nil, false
	}
	if !nested {
		return v, true
	}
	sub, ok := AsMap(v)
	if !ok {
		return nil, false
	}
	return ValueOrNil(sub, rest)
}

// Set stores value at path, creating intermediate maps as needed. An
// intermediate scalar is replaced by a map.
func Set(row types.RowMap, path string, value any) {
	head, rest, nested := strings.Cut(path, Separator)
	if !nested {
		row[head] = value
		return
	}
	sub, ok := AsMap(row[head])
	if !ok {
		sub = types.RowMap{}
		row[head] = sub
	}
	Set(sub, rest, value)
}

// Unflatten builds a nested map from aligned columns and values. A column
// without a value is stored as nil; extra values are ignored.
func Unflatten(columns []string, values []any) types.RowMap {
	row := make(types.RowMap, len(columns))
	for i, c := range columns {
		var v any
		if i < len(values) {
			v = values[i]
		}
		Set(row, c, v)
	}
	return row
}
