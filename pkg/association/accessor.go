package association

import (
	"github.com/mesh-intelligence/assocrows/internal/dotpath"
	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// Accessor reads column names and values from a row structure. The zero
// value reads rows without a prefix. An Accessor is immutable and safe for
// concurrent use.
type Accessor struct {
	prefix          string
	prefixedColumns []string
	prefixedSet     map[string]struct{}
}

// Prefix returns the column prefix, or "" when the accessor has none.
func (a *Accessor) Prefix() string {
	return a.prefix
}

// PrefixedColumns returns a copy of the declared prefixed columns.
func (a *Accessor) PrefixedColumns() []string {
	return append([]string(nil), a.prefixedColumns...)
}

// unprefix strips the prefix and its separator. Only valid when a prefix is set.
func (a *Accessor) unprefix(column string) string {
	return column[len(a.prefix)+len(dotpath.Separator):]
}

// ColumnNames returns every leaf path of row. Leaves stored under the bare
// name of a prefixed column are reported under the prefixed name.
func (a *Accessor) ColumnNames(row types.RowMap) types.ColumnSet {
	names := make(types.ColumnSet, len(row))
	addColumnNames(row, names, "")
	for _, prefixed := range a.prefixedColumns {
		bare := a.unprefix(prefixed)
		if names.Contains(bare) {
			names.Remove(bare)
			names.Add(prefixed)
		}
	}
	return names
}

func addColumnNames(row types.RowMap, names types.ColumnSet, prefix string) {
	for field, v := range row {
		if sub, ok := dotpath.AsMap(v); ok {
			addColumnNames(sub, names, dotpath.Flatten(prefix, field))
			continue
		}
		names.Add(dotpath.Flatten(prefix, field))
	}
}

// Get returns the value of column. A direct key wins over dotted descent;
// false means the column is absent.
func (a *Accessor) Get(row types.RowMap, column string) (any, bool) {
	if _, ok := a.prefixedSet[column]; ok {
		column = a.unprefix(column)
	}
	if v, ok := row[column]; ok {
		return v, true
	}
	return dotpath.ValueOrNil(row, column)
}
