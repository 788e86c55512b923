package types

import (
	"encoding/json"
	"fmt"
	"slices"
)

// AssociationKeyMetadata describes the column layout of one association.
type AssociationKeyMetadata struct {
	// Table is the association table name.
	Table string `json:"table"`

	// KeyColumns identify the owning entity. Their values live in the
	// AssociationKey, not in the stored rows.
	KeyColumns []string `json:"key_columns"`

	// RowKeyColumns identify one row within the association.
	RowKeyColumns []string `json:"row_key_columns"`

	// AssociatedEntityKeyColumns reference the associated entity. When they
	// share a leading dotted segment, that segment is the row prefix.
	AssociatedEntityKeyColumns []string `json:"associated_entity_key_columns"`

	// CollectionRole names the owning collection, e.g. "Order.lines".
	CollectionRole string `json:"collection_role,omitempty"`
}

// IsKeyColumn reports whether column is one of the KeyColumns.
func (m AssociationKeyMetadata) IsKeyColumn(column string) bool {
	return slices.Contains(m.KeyColumns, column)
}

// ColumnsWithoutKeyColumns returns columns minus the KeyColumns, keeping order.
func (m AssociationKeyMetadata) ColumnsWithoutKeyColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if !m.IsKeyColumn(c) {
			out = append(out, c)
		}
	}
	return out
}

// RowColumns returns the union of RowKeyColumns and AssociatedEntityKeyColumns
// without KeyColumns, in declaration order and without duplicates.
func (m AssociationKeyMetadata) RowColumns() []string {
	var out []string
	for _, c := range append(slices.Clone(m.RowKeyColumns), m.AssociatedEntityKeyColumns...) {
		if m.IsKeyColumn(c) || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// AssociationKey identifies one association document: the metadata plus the
// owning entity's key values, aligned with Metadata.KeyColumns.
type AssociationKey struct {
	Metadata  AssociationKeyMetadata `json:"metadata"`
	KeyValues []any                  `json:"key_values"`
}

// Validate checks that the table is named and that every key column has a value.
func (k AssociationKey) Validate() error {
	if k.Metadata.Table == "" {
		return ErrInvalidTable
	}
	if len(k.Metadata.KeyColumns) == 0 || len(k.Metadata.KeyColumns) != len(k.KeyValues) {
		return ErrInvalidKey
	}
	return nil
}

// IsKeyColumn reports whether column is one of the key columns.
func (k AssociationKey) IsKeyColumn(column string) bool {
	return k.Metadata.IsKeyColumn(column)
}

// ColumnValue returns the key value for a key column.
func (k AssociationKey) ColumnValue(column string) (any, bool) {
	i := slices.Index(k.Metadata.KeyColumns, column)
	if i < 0 || i >= len(k.KeyValues) {
		return nil, false
	}
	return k.KeyValues[i], true
}

// DocumentKey returns the stable identity of the association document:
// the table name followed by the JSON object of key column values.
func (k AssociationKey) DocumentKey() (string, error) {
	values := make(map[string]any, len(k.KeyValues))
	for i, c := range k.Metadata.KeyColumns {
		if i < len(k.KeyValues) {
			values[c] = k.KeyValues[i]
		}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshaling key values: %w", err)
	}
	return k.Metadata.Table + ":" + string(data), nil
}
