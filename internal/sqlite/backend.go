// Package sqlite implements the SQLite document backend for association rows.
// JSONL files in the data directory are the source of truth; SQLite serves
// as the query engine and is rebuilt from them on Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/assocrows/pkg/types"
)

var _ types.Store = (*Backend)(nil)

// Backend implements types.Store using SQLite as the query engine and a JSONL
// file as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger

	// Sync strategy state.
	syncStrategy string // effective sync strategy: immediate, on_close, batch
	batchSize    int    // number of writes before batch flush
	pending      int    // writes not yet persisted to JSONL
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for backend diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = l
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, initializes the SQLite schema,
// and loads associations.jsonl.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	config.DataDir = dataDir

	// The database is a cache; start from a fresh file every time.
	dbPath := filepath.Join(dataDir, databaseFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	jsonlPath := filepath.Join(dataDir, associationsJSONL)
	if err := touch(jsonlPath); err != nil {
		db.Close()
		return err
	}

	loaded, err := loadJSONL(db, jsonlPath)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.syncStrategy = config.GetSyncStrategy()
	b.batchSize = config.GetBatchSize()
	b.pending = 0
	b.attached = true

	b.logger.Info("store attached",
		slog.String("data_dir", dataDir),
		slog.String("sync_strategy", b.syncStrategy),
		slog.Int("documents", loaded))
	return nil
}

// Detach releases all resources held by the backend. Pending writes are
// flushed to JSONL before the database is closed. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.pending > 0 {
		if err := b.persistLocked(); err != nil {
			return fmt.Errorf("flush pending writes: %w", err)
		}
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Info("store detached", slog.String("data_dir", b.config.DataDir))
	return nil
}

// Flush persists pending writes to JSONL regardless of the sync strategy.
func (b *Backend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	if b.pending == 0 {
		return nil
	}
	return b.persistLocked()
}

// recordWrite applies the sync strategy after a committed mutation.
// The caller must hold b.mu write lock.
func (b *Backend) recordWrite() error {
	b.pending++
	switch b.syncStrategy {
	case types.SyncOnClose:
		return nil
	case types.SyncBatch:
		if b.pending < b.batchSize {
			return nil
		}
	}
	return b.persistLocked()
}

// persistLocked rewrites associations.jsonl from the database.
// The caller must hold b.mu write lock.
func (b *Backend) persistLocked() error {
	path := filepath.Join(b.config.DataDir, associationsJSONL)
	n, err := persistJSONL(b.db, path)
	if err != nil {
		return fmt.Errorf("persisting %s: %w", associationsJSONL, err)
	}
	b.logger.Debug("jsonl persisted", slog.Int("documents", n), slog.Int("writes", b.pending))
	b.pending = 0
	return nil
}

// generateUUID generates a new UUID v7 for document IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
