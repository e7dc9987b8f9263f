package store

import (
	"context"

	"github.com/enki-somer/qs-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// EntityRepository provides schema-indexed access to the cached entity
// tables. Records are opaque JSON payloads keyed by a stable identifier; the
// store stamps last_modified on every write and performs no validation.
type EntityRepository interface {
	// Put inserts or replaces a record by primary key. indexes supplies
	// values for the table's secondary index columns; unknown columns are
	// rejected with ErrUnknownIndex.
	Put(ctx context.Context, table, id string, payload []byte, indexes map[string]any) error
	// Get fetches one record by primary key.
	Get(ctx context.Context, table, id string) (Record, error)
	// GetAll fetches every record in a table.
	GetAll(ctx context.Context, table string) ([]Record, error)
	// GetByIndex fetches all records whose secondary index column matches
	// value.
	GetByIndex(ctx context.Context, table, index string, value any) ([]Record, error)
	// Delete removes one record by primary key.
	Delete(ctx context.Context, table, id string) error
	// Clear removes every record in a table.
	Clear(ctx context.Context, table string) error
	// Count returns the number of records in a table.
	Count(ctx context.Context, table string) (int64, error)
}

// ActionRepository is the durable side of the pending action queue.
//
// Nothing here deletes an unsynced row except Delete, which is reserved for
// the explicit discard and data-reset paths.
type ActionRepository interface {
	// Save inserts or replaces a pending action row. Also used to rewrite
	// retry metadata in place.
	Save(ctx context.Context, action models.PendingAction) error
	// Get fetches one action by id.
	Get(ctx context.Context, id string) (models.PendingAction, error)
	// GetAll returns every queued action in enqueue order.
	GetAll(ctx context.Context) ([]models.PendingAction, error)
	// GetUnsynced returns all actions with synced=false in enqueue order.
	GetUnsynced(ctx context.Context) ([]models.PendingAction, error)
	// MarkSynced flags an action as confirmed by the server.
	MarkSynced(ctx context.Context, id string) error
	// RecordFailure increments the retry counter and stores the latest
	// error message.
	RecordFailure(ctx context.Context, id, message string) error
	// ResetRetries zeroes the retry counter and error, making the action
	// eligible for automatic replay again.
	ResetRetries(ctx context.Context, id string) error
	// Delete removes one action unconditionally.
	Delete(ctx context.Context, id string) error
	// PurgeSynced removes every already-confirmed action to bound table
	// growth.
	PurgeSynced(ctx context.Context) (int64, error)
	// CountUnsynced returns the number of actions with synced=false.
	CountUnsynced(ctx context.Context) (int64, error)
}

// SettingsRepository is a free-form key/value table for app settings.
type SettingsRepository interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
