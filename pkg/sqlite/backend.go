// Package sqlite provides the public API for the SQLite association store.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/assocrows/internal/sqlite"
	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// NewBackend creates a new SQLite backend instance. A nil logger discards
// diagnostics. The backend is not attached; call Attach with a Config to
// initialize.
//
// Example:
//
//	store := sqlite.NewBackend(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".assocrows-db",
//	})
//	defer store.Detach()
func NewBackend(logger *slog.Logger) types.Store {
	if logger == nil {
		return sqlite.NewBackend()
	}
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
