package association

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/mesh-intelligence/assocrows/internal/dotpath"
	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// Codec converts association rows to and from their stored element form.
type Codec struct{}

// DefaultCodec is the codec used by Load and Save.
var DefaultCodec Codec

// Encode returns the stored element for tuple. Key columns are dropped since
// the association key already holds them. When the only remaining column is
// the single row column of meta and holds a scalar, it is stored as the bare
// value. Otherwise the element is a nested map without nil values, in which
// associated entity key columns lose the shared prefix.
func (Codec) Encode(meta types.AssociationKeyMetadata, tuple types.Tuple) any {
	columns := make([]string, 0, len(tuple))
	for c := range tuple {
		if !meta.IsKeyColumn(c) {
			columns = append(columns, c)
		}
	}
	if single, ok := scalarColumn(meta); ok && len(columns) == 1 && columns[0] == single {
		if _, nested := dotpath.AsMap(tuple[single]); !nested {
			return tuple[single]
		}
	}
	sort.Strings(columns)

	row := make(types.RowMap, len(columns))
	for _, c := range columns {
		v := tuple[c]
		if v == nil {
			continue
		}
		dotpath.Set(row, storedColumn(meta, c), v)
	}
	return row
}

// Decode rebuilds the association row from a stored element. A scalar
// element is attributed to the only row column of the metadata.
func (Codec) Decode(key types.AssociationKey, element any) (*Row, error) {
	if m, ok := dotpath.AsMap(element); ok {
		return NewRow(key, m), nil
	}
	single, ok := scalarColumn(key.Metadata)
	if !ok {
		return nil, fmt.Errorf("%w: scalar element needs exactly one row column, have %d",
			types.ErrInvalidData, len(key.Metadata.RowColumns()))
	}
	return NewRow(key, BuildRow([]string{storedColumn(key.Metadata, single)}, []any{element})), nil
}

// scalarColumn returns the column a bare stored element belongs to: the only
// row column of meta.
func scalarColumn(meta types.AssociationKeyMetadata) (string, bool) {
	cols := meta.RowColumns()
	if len(cols) != 1 {
		return "", false
	}
	return cols[0], true
}

// storedColumn strips the shared prefix from an associated entity key column.
func storedColumn(meta types.AssociationKeyMetadata, column string) string {
	if !slices.Contains(meta.AssociatedEntityKeyColumns, column) {
		return column
	}
	prefix := SharedPrefix(meta.AssociatedEntityKeyColumns)
	if prefix == "" {
		return column
	}
	return strings.TrimPrefix(column, prefix+dotpath.Separator)
}
