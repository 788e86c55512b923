// This file implements the association document operations.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/assocrows/pkg/types"
)

const selectAssociation = `SELECT doc_id, table_name, doc_key, key_json, elements, version, updated_at FROM associations`

// GetAssociation retrieves the document stored for key.
func (b *Backend) GetAssociation(key types.AssociationKey) (*types.AssociationDocument, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	docKey, err := documentKey(key)
	if err != nil {
		return nil, err
	}

	rec, err := scanRecord(b.db.QueryRow(selectAssociation+" WHERE doc_key = ?", docKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting association %s: %w", docKey, err)
	}
	return hydrateDocument(rec)
}

// PutAssociation replaces the stored elements of the association. A new
// document gets a UUID v7; an existing one keeps its ID and bumps its version.
func (b *Backend) PutAssociation(key types.AssociationKey, elements []any) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrDetached
	}
	docKey, err := documentKey(key)
	if err != nil {
		return "", err
	}

	keyJSON, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling key: %v", types.ErrInvalidKey, err)
	}
	payload, err := marshalElements(elements)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling elements: %v", types.ErrInvalidData, err)
	}

	var (
		docID   string
		version int64
	)
	err = b.db.QueryRow("SELECT doc_id, version FROM associations WHERE doc_key = ?", docKey).Scan(&docID, &version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("checking association existence: %w", err)
	}
	exists := err == nil

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if exists {
		_, err = tx.Exec(
			"UPDATE associations SET key_json = ?, elements = ?, version = ?, updated_at = ? WHERE doc_id = ?",
			string(keyJSON), payload, version+1, now, docID,
		)
	} else {
		docID = generateUUID()
		_, err = tx.Exec(
			`INSERT INTO associations (doc_id, table_name, doc_key, key_json, elements, version, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			docID, key.Metadata.Table, docKey, string(keyJSON), payload, 1, now,
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting association: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing association: %w", err)
	}

	b.logger.Debug("association stored",
		slog.String("doc_id", docID),
		slog.String("doc_key", docKey),
		slog.Int("elements", len(elements)))

	if err := b.recordWrite(); err != nil {
		return "", err
	}
	return docID, nil
}

// RemoveAssociation deletes the document stored for key.
func (b *Backend) RemoveAssociation(key types.AssociationKey) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	docKey, err := documentKey(key)
	if err != nil {
		return err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM associations WHERE doc_key = ?", docKey)
	if err != nil {
		return fmt.Errorf("deleting association: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting association: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing association deletion: %w", err)
	}

	b.logger.Debug("association removed", slog.String("doc_key", docKey))
	return b.recordWrite()
}

// ListAssociations returns the documents of table ordered by document key.
// An empty table lists every document.
func (b *Backend) ListAssociations(table string) ([]*types.AssociationDocument, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	query := selectAssociation
	var args []any
	if table != "" {
		query += " WHERE table_name = ?"
		args = append(args, table)
	}
	query += " ORDER BY doc_key"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing associations: %w", err)
	}
	defer rows.Close()

	docs := []*types.AssociationDocument{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating association: %w", err)
		}
		doc, err := hydrateDocument(rec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating associations: %w", err)
	}
	return docs, nil
}

// documentKey validates key and returns its document key.
func documentKey(key types.AssociationKey) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	docKey, err := key.DocumentKey()
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidKey, err)
	}
	return docKey, nil
}

// hydrateDocument converts a JSONL record into an AssociationDocument.
func hydrateDocument(rec *associationJSON) (*types.AssociationDocument, error) {
	updatedAt, err := time.Parse(time.RFC3339Nano, rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at of %s: %w", rec.DocID, err)
	}
	return &types.AssociationDocument{
		DocID:     rec.DocID,
		Key:       rec.Key,
		Elements:  rec.Elements,
		Version:   rec.Version,
		UpdatedAt: updatedAt,
	}, nil
}
