package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnSet(t *testing.T) {
	s := NewColumnSet("b", "a")
	s.Add("c")
	s.Add("a")
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("c"))

	s.Remove("b")
	assert.False(t, s.Contains("b"))
	assert.Equal(t, []string{"a", "c"}, s.Sorted())
}

func TestColumnSetSortedEmpty(t *testing.T) {
	assert.Empty(t, NewColumnSet().Sorted())
}

func TestAssociationKeyValidate(t *testing.T) {
	meta := AssociationKeyMetadata{Table: "Order_lines", KeyColumns: []string{"order_id"}}

	tests := []struct {
		name    string
		key     AssociationKey
		wantErr error
	}{
		{"valid key", AssociationKey{Metadata: meta, KeyValues: []any{"o1"}}, nil},
		{"missing table", AssociationKey{Metadata: AssociationKeyMetadata{KeyColumns: []string{"id"}}, KeyValues: []any{1}}, ErrInvalidTable},
		{"value count mismatch", AssociationKey{Metadata: meta}, ErrInvalidKey},
		{"no key columns", AssociationKey{Metadata: AssociationKeyMetadata{Table: "t"}}, ErrInvalidKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAssociationKeyColumnValue(t *testing.T) {
	key := AssociationKey{
		Metadata:  AssociationKeyMetadata{Table: "t", KeyColumns: []string{"a", "b"}},
		KeyValues: []any{"x", 2},
	}

	v, ok := key.ColumnValue("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = key.ColumnValue("c")
	assert.False(t, ok)
	assert.True(t, key.IsKeyColumn("a"))
	assert.False(t, key.IsKeyColumn("c"))
}

func TestAssociationKeyDocumentKey(t *testing.T) {
	key := AssociationKey{
		Metadata:  AssociationKeyMetadata{Table: "Order_lines", KeyColumns: []string{"order_id", "tenant"}},
		KeyValues: []any{"o1", "acme"},
	}

	got, err := key.DocumentKey()
	require.NoError(t, err)
	assert.Equal(t, `Order_lines:{"order_id":"o1","tenant":"acme"}`, got)
}

func TestMetadataRowColumns(t *testing.T) {
	meta := AssociationKeyMetadata{
		Table:                      "t",
		KeyColumns:                 []string{"owner_id"},
		RowKeyColumns:              []string{"owner_id", "item.id", "idx"},
		AssociatedEntityKeyColumns: []string{"item.id"},
	}
	assert.Equal(t, []string{"item.id", "idx"}, meta.RowColumns())
	assert.Equal(t, []string{"idx"}, meta.ColumnsWithoutKeyColumns([]string{"owner_id", "idx"}))
}
