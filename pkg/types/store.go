package types

// Store is the document backend for association rows. Callers attach to a
// backend, read and write association documents, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist; returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrDetached.
	Detach() error

	// GetAssociation returns the stored elements of the association
	// identified by key. Returns ErrNotFound if no document exists.
	GetAssociation(key AssociationKey) (*AssociationDocument, error)

	// PutAssociation replaces the stored elements of the association and
	// returns the document ID (a UUID v7, generated on first write).
	PutAssociation(key AssociationKey, elements []any) (string, error)

	// RemoveAssociation deletes the association document.
	// Returns ErrNotFound if no document exists.
	RemoveAssociation(key AssociationKey) error

	// ListAssociations returns every document of the table ordered by
	// document key. An empty table name lists every document.
	ListAssociations(table string) ([]*AssociationDocument, error)
}
