package association

import (
	"slices"

	"github.com/mesh-intelligence/assocrows/internal/dotpath"
	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// noPrefix is shared by every row without a prefix. It is never mutated.
var noPrefix = &Accessor{}

// BuildRow builds the row structure for aligned columns and values. A single
// column yields a single-entry map keyed by the literal column name; more
// columns are nested by their dotted paths.
func BuildRow(columns []string, values []any) types.RowMap {
	if len(columns) == 1 {
		var v any
		if len(values) > 0 {
			v = values[0]
		}
		return types.RowMap{columns[0]: v}
	}
	return dotpath.Unflatten(columns, values)
}

// AccessorFor returns the Accessor for rows whose prefixedColumns live under
// prefix. An empty prefix returns the shared unprefixed accessor and
// prefixedColumns is ignored.
func AccessorFor(prefixedColumns []string, prefix string) *Accessor {
	if prefix == "" {
		return noPrefix
	}
	a := &Accessor{
		prefix:          prefix,
		prefixedColumns: slices.Clone(prefixedColumns),
		prefixedSet:     make(map[string]struct{}, len(prefixedColumns)),
	}
	for _, c := range prefixedColumns {
		a.prefixedSet[c] = struct{}{}
	}
	return a
}
