// Package association translates between association rows addressed by
// flat, dotted column names and the nested maps stored by the document
// backend.
//
// BuildRow materializes one row and AccessorFor returns the Accessor that
// reads it back. A row with a single column is kept as a single-entry map;
// larger rows are nested by their dotted paths. When the columns of the
// associated entity share a leading segment (the prefix), that segment is
// stripped before storage and restored by the Accessor.
//
// Example:
//
//	row := association.BuildRow([]string{"id", "address.city"}, []any{1, "Lyon"})
//	acc := association.AccessorFor(nil, "")
//	names := acc.ColumnNames(row) // {"id", "address.city"}
//	city, _ := acc.Get(row, "address.city")
package association
