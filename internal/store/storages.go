package store

import (
	"context"
	"fmt"

	"github.com/enki-somer/qs-sync/internal/config"
	"github.com/enki-somer/qs-sync/internal/logger"
)

// Storages groups all client-side storage repositories into a single value
// that can be passed around the service layer.
type Storages struct {
	// Entities is the schema-indexed cache over the registered entity
	// tables.
	Entities EntityRepository

	// Cache exposes the typed per-entity wrappers over Entities.
	Cache *Cache

	// Actions is the durable pending action queue.
	Actions ActionRepository

	// Settings is the free-form key/value table.
	Settings SettingsRepository

	db *DB
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value wired to fresh
//     repositories sharing the one connection pool.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg config.ClientStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	entities := NewEntityRepository(db, logger)

	return &Storages{
		Entities: entities,
		Cache:    NewCache(entities),
		Actions:  NewActionRepository(db, logger),
		Settings: NewSettingsRepository(db, logger),
		db:       db,
	}, nil
}

// Reset wipes every cache table and the pending action queue. This is the
// one sanctioned path that discards unsynced actions; callers are expected
// to confirm with the user before invoking it.
func (s *Storages) Reset(ctx context.Context) error {
	for _, table := range EntityTableNames() {
		if err := s.Entities.Clear(ctx, table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM pending_actions;`); err != nil {
		return fmt.Errorf("reset pending_actions: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM app_settings;`); err != nil {
		return fmt.Errorf("reset app_settings: %w", err)
	}

	return nil
}

// Close releases the underlying database handle.
func (s *Storages) Close() error {
	return s.db.Close()
}
