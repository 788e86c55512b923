// JSON record structure for SQLite backend persistence.
package sqlite

import "github.com/mesh-intelligence/assocrows/pkg/types"

// associationJSON represents one association document in associations.jsonl.
type associationJSON struct {
	DocID     string               `json:"doc_id"`
	TableName string               `json:"table_name"`
	DocKey    string               `json:"doc_key"`
	Key       types.AssociationKey `json:"key"`
	Elements  []any                `json:"elements"`
	Version   int64                `json:"version"`
	UpdatedAt string               `json:"updated_at"`
}
