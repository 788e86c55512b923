// This file loads associations.jsonl into SQLite on Attach and writes it back.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// loadJSONL reads the JSONL file and inserts every well-formed document.
// Loading is transactional: all succeed or the database remains empty.
// Lines that do not decode into a document with an ID and key are skipped;
// unknown fields are ignored. Returns the number of documents loaded.
func loadJSONL(db *sql.DB, path string) (int, error) {
	docs, err := readDocuments(path)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := 0
	for _, rec := range docs {
		keyJSON, err := json.Marshal(rec.Key)
		if err != nil {
			return 0, fmt.Errorf("marshaling key of %s: %w", rec.DocID, err)
		}
		elements, err := marshalElements(rec.Elements)
		if err != nil {
			return 0, fmt.Errorf("marshaling elements of %s: %w", rec.DocID, err)
		}
		// Later lines win for duplicate document keys.
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO associations (doc_id, table_name, doc_key, key_json, elements, version, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.DocID, rec.TableName, rec.DocKey, string(keyJSON), elements, rec.Version, rec.UpdatedAt,
		); err != nil {
			return 0, fmt.Errorf("inserting %s: %w", rec.DocID, err)
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// persistJSONL writes every document to the JSONL file, ordered by document
// key. Returns the number of documents written.
func persistJSONL(db *sql.DB, path string) (int, error) {
	rows, err := db.Query(
		`SELECT doc_id, table_name, doc_key, key_json, elements, version, updated_at
		 FROM associations ORDER BY doc_key`,
	)
	if err != nil {
		return 0, fmt.Errorf("querying associations: %w", err)
	}
	defer rows.Close()

	var docs []*associationJSON
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return 0, err
		}
		docs = append(docs, rec)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating associations: %w", err)
	}

	if err := writeDocuments(path, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one associations row into its JSONL record form.
func scanRecord(s scanner) (*associationJSON, error) {
	var (
		rec      associationJSON
		keyJSON  string
		elements string
	)
	if err := s.Scan(&rec.DocID, &rec.TableName, &rec.DocKey, &keyJSON, &elements, &rec.Version, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keyJSON), &rec.Key); err != nil {
		return nil, fmt.Errorf("parsing key of %s: %w", rec.DocID, err)
	}
	if err := json.Unmarshal([]byte(elements), &rec.Elements); err != nil {
		return nil, fmt.Errorf("parsing elements of %s: %w", rec.DocID, err)
	}
	if rec.Elements == nil {
		rec.Elements = []any{}
	}
	return &rec, nil
}

// marshalElements encodes stored elements, writing an empty array for nil.
func marshalElements(elements []any) (string, error) {
	if elements == nil {
		elements = []any{}
	}
	data, err := json.Marshal(elements)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
