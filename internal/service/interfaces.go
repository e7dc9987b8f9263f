package service

import (
	"context"

	"github.com/enki-somer/qs-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// StatusListener is invoked with a fresh status snapshot after every state
// change: enqueue, pass start, pass end, connectivity transition, dead-letter
// operation.
type StatusListener func(status models.SyncStatus)

// SyncManager coordinates the pending action queue: it accepts mutations
// while offline, replays them in enqueue order once connectivity returns,
// and exposes a status surface the UI layer can subscribe to.
type SyncManager interface {
	// QueueAction persists an action and schedules a replay pass when the
	// backend is reachable. Returns the action id.
	QueueAction(ctx context.Context, action models.PendingAction) (string, error)

	// SyncPendingActions runs one replay pass. Only one pass runs at a
	// time; a call that overlaps a running pass returns immediately.
	// Per-action delivery failures are recorded in the status, not
	// returned.
	SyncPendingActions(ctx context.Context) error

	// ForceSync runs a pass on demand. Fails with ErrOffline when the
	// monitor says the backend is unreachable.
	ForceSync(ctx context.Context) error

	Status() models.SyncStatus
	OnStatusChange(fn StatusListener) (unsubscribe func())

	// GetPendingActions returns the whole queue in enqueue order,
	// including synced-but-not-yet-purged and dead-lettered rows.
	GetPendingActions(ctx context.Context) ([]models.PendingAction, error)

	// DeadLetters returns unsynced actions parked at the retry ceiling.
	DeadLetters(ctx context.Context) ([]models.PendingAction, error)
	// RequeueDeadLetter clears an exhausted action's retry state so the
	// next pass picks it up again.
	RequeueDeadLetter(ctx context.Context, id string) error
	// DiscardDeadLetter permanently drops an exhausted action. This is
	// the only path that deletes an unsynced row.
	DiscardDeadLetter(ctx context.Context, id string) error

	// Start launches the connectivity subscription and the periodic
	// replay loop; Stop halts both and waits for the loop to exit.
	Start(ctx context.Context)
	Stop()
}
