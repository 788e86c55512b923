package association

import (
	"strings"

	"github.com/mesh-intelligence/assocrows/internal/dotpath"
	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// Row is one logical association row: the stored row structure read through
// the Accessor that matches its association key.
type Row struct {
	key      types.AssociationKey
	accessor *Accessor
	data     types.RowMap
}

// NewRow binds data to key. The prefix is the segment shared by the
// associated entity key columns, if any.
func NewRow(key types.AssociationKey, data types.RowMap) *Row {
	cols := key.Metadata.AssociatedEntityKeyColumns
	return &Row{
		key:      key,
		accessor: AccessorFor(cols, SharedPrefix(cols)),
		data:     data,
	}
}

// Key returns the association key the row belongs to.
func (r *Row) Key() types.AssociationKey {
	return r.key
}

// Data returns the stored row structure.
func (r *Row) Data() types.RowMap {
	return r.data
}

// Accessor returns the accessor used to read the row.
func (r *Row) Accessor() *Accessor {
	return r.accessor
}

// ColumnNames returns the row's columns together with the key columns.
func (r *Row) ColumnNames() types.ColumnSet {
	names := r.accessor.ColumnNames(r.data)
	for _, c := range r.key.Metadata.KeyColumns {
		names.Add(c)
	}
	return names
}

// Get returns the value of column. Key columns are answered from the key.
func (r *Row) Get(column string) (any, bool) {
	if r.key.IsKeyColumn(column) {
		return r.key.ColumnValue(column)
	}
	return r.accessor.Get(r.data, column)
}

// Tuple flattens the row back to column names and values.
func (r *Row) Tuple() types.Tuple {
	names := r.ColumnNames()
	t := make(types.Tuple, len(names))
	for c := range names {
		if v, ok := r.Get(c); ok {
			t[c] = v
		}
	}
	return t
}

// SharedPrefix returns the leading dotted segment shared by every column,
// or "" when a column has no dot or the segments differ.
func SharedPrefix(columns []string) string {
	var prefix string
	for i, c := range columns {
		head, _, ok := strings.Cut(c, dotpath.Separator)
		if !ok {
			return ""
		}
		if i == 0 {
			prefix = head
			continue
		}
		if head != prefix {
			return ""
		}
	}
	return prefix
}
