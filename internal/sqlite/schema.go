// Package sqlite implements the SQLite backend for the association row store.
// This file holds the schema DDL.
package sqlite

// Schema DDL. The database is a query cache rebuilt from associations.jsonl
// on every Attach.
const (
	createAssociations = `CREATE TABLE associations (
    doc_id TEXT PRIMARY KEY,
    table_name TEXT NOT NULL,
    doc_key TEXT NOT NULL UNIQUE,
    key_json TEXT NOT NULL,
    elements TEXT NOT NULL,
    version INTEGER NOT NULL,
    updated_at TEXT NOT NULL
);`

	createAssociationsTableIndex = `CREATE INDEX idx_associations_table ON associations(table_name);`
)

// schemaDDL lists the statements executed on Attach, in order.
var schemaDDL = []string{
	createAssociations,
	createAssociationsTableIndex,
}

// JSONL file names in the data directory.
const (
	associationsJSONL = "associations.jsonl"
	databaseFile      = "assocrows.db"
)
