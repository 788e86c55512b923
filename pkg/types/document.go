package types

import "time"

// AssociationDocument holds the stored elements of one association. Each
// element is either a bare scalar (single-column rows) or a nested RowMap.
type AssociationDocument struct {
	// DocID is a UUID v7, generated on first write.
	DocID string `json:"doc_id"`

	// Key identifies the association.
	Key AssociationKey `json:"key"`

	// Elements are the stored association rows.
	Elements []any `json:"elements"`

	// Version increments on every write.
	Version int64 `json:"version"`

	// UpdatedAt is the timestamp of the last write.
	UpdatedAt time.Time `json:"updated_at"`
}
