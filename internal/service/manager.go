// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

// Package service implements the sync manager that sits between the durable
// action queue, the connectivity monitor and the remote API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/enki-somer/qs-sync/internal/adapter"
	"github.com/enki-somer/qs-sync/internal/config"
	"github.com/enki-somer/qs-sync/internal/connectivity"
	"github.com/enki-somer/qs-sync/internal/logger"
	"github.com/enki-somer/qs-sync/internal/store"
	"github.com/enki-somer/qs-sync/models"
)

// maxRetries is the replay ceiling. An action that has failed this many
// times is excluded from automatic passes but kept in the queue until an
// explicit requeue or discard.
const maxRetries = 3

type manager struct {
	actions store.ActionRepository
	api     adapter.APIClient
	monitor connectivity.Monitor
	workers config.ClientWorkers

	// replayTimeout bounds each individual delivery during a pass so one
	// hung request cannot stall the whole queue.
	replayTimeout time.Duration

	logger *logger.Logger

	mu           sync.Mutex
	mirror       []models.PendingAction
	status       models.SyncStatus
	listeners    map[int]StatusListener
	nextListener int
	syncing      bool
	enqueueTimer *time.Timer

	cancel      context.CancelFunc
	unsubscribe func()
	wg          sync.WaitGroup
}

// NewManager wires the sync manager. All collaborators are injected; the
// manager holds no package-level state.
func NewManager(
	actions store.ActionRepository,
	api adapter.APIClient,
	monitor connectivity.Monitor,
	cfg config.ClientConfig,
	log *logger.Logger,
) SyncManager {
	return &manager{
		actions:       actions,
		api:           api,
		monitor:       monitor,
		workers:       cfg.Workers,
		replayTimeout: cfg.Adapter.RequestTimeout,
		logger:        log,
		status:        models.SyncStatus{IsOnline: monitor.Online()},
		listeners:     make(map[int]StatusListener),
	}
}

// ── Queueing ─────────────────────────────────────────────────────────────────

func (m *manager) QueueAction(ctx context.Context, action models.PendingAction) (string, error) {
	if !action.Type.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownActionType, action.Type)
	}

	if err := m.actions.Save(ctx, action); err != nil {
		return "", fmt.Errorf("persist action: %w", err)
	}

	m.mu.Lock()
	m.mirror = append(m.mirror, action)
	m.status.PendingCount = len(m.mirror)
	if m.monitor.Online() && !m.syncing && m.enqueueTimer == nil {
		// Batch rapid enqueues into a single pass.
		m.enqueueTimer = time.AfterFunc(m.workers.EnqueueDelay, func() {
			_ = m.SyncPendingActions(context.Background())
		})
	}
	snapshot, subs := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Debug().Str("action_id", action.ID).Str("type", string(action.Type)).Msg("action queued")
	m.notify(snapshot, subs)

	return action.ID, nil
}

// ── Replay ───────────────────────────────────────────────────────────────────

func (m *manager) SyncPendingActions(ctx context.Context) error {
	m.mu.Lock()
	if m.syncing {
		m.mu.Unlock()
		return nil
	}
	m.syncing = true
	m.stopEnqueueTimerLocked()
	started := time.Now()
	m.status.SyncInProgress = true
	m.status.LastSyncAttempt = &started
	snapshot, subs := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snapshot, subs)

	clean, passErrs, err := m.runPass(ctx)

	m.mu.Lock()
	m.syncing = false
	m.status.SyncInProgress = false
	m.status.PendingCount = len(m.mirror)
	m.status.Errors = append(m.status.Errors, passErrs...)
	if err == nil && clean {
		finished := time.Now()
		m.status.LastSuccessfulSync = &finished
	}
	snapshot, subs = m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snapshot, subs)
	return err
}

// runPass replays every eligible action in enqueue order. Per-action
// failures are collected but never stop the pass; only storage-level
// failures abort it. Returns clean=true when every eligible action was
// confirmed.
func (m *manager) runPass(ctx context.Context) (clean bool, passErrs []string, err error) {
	unsynced, err := m.actions.GetUnsynced(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("load pending actions: %w", err)
	}

	clean = true
	for _, action := range unsynced {
		if action.RetryCount >= maxRetries {
			continue
		}
		if err := ctx.Err(); err != nil {
			m.refreshMirror(context.WithoutCancel(ctx))
			return false, passErrs, err
		}

		if sendErr := m.deliver(ctx, action); sendErr != nil {
			clean = false
			passErrs = append(passErrs, fmt.Sprintf("%s %s: %v", action.Type, action.ID, sendErr))
			m.logger.Warn().Str("action_id", action.ID).Err(sendErr).Msg("replay failed")

			if recErr := m.actions.RecordFailure(ctx, action.ID, sendErr.Error()); recErr != nil {
				m.refreshMirror(ctx)
				return false, passErrs, fmt.Errorf("record failure for %s: %w", action.ID, recErr)
			}
			continue
		}

		if markErr := m.actions.MarkSynced(ctx, action.ID); markErr != nil {
			m.refreshMirror(ctx)
			return false, passErrs, fmt.Errorf("mark %s synced: %w", action.ID, markErr)
		}
		m.logger.Debug().Str("action_id", action.ID).Msg("action confirmed")
	}

	if _, purgeErr := m.actions.PurgeSynced(ctx); purgeErr != nil {
		m.refreshMirror(ctx)
		return false, passErrs, fmt.Errorf("purge synced actions: %w", purgeErr)
	}

	m.refreshMirror(ctx)
	return clean, passErrs, nil
}

// deliver sends one action with its own timeout.
func (m *manager) deliver(ctx context.Context, action models.PendingAction) error {
	sendCtx := ctx
	if m.replayTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, m.replayTimeout)
		defer cancel()
	}
	return dispatch(sendCtx, m.api, action)
}

func (m *manager) ForceSync(ctx context.Context) error {
	if !m.monitor.Online() {
		return ErrOffline
	}
	return m.SyncPendingActions(ctx)
}

// ── Status ───────────────────────────────────────────────────────────────────

func (m *manager) Status() models.SyncStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.IsOnline = m.monitor.Online()
	return m.status.Clone()
}

func (m *manager) OnStatusChange(fn StatusListener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextListener
	m.nextListener++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// snapshotLocked clones the status and listener set for notification
// outside the lock. Callers must hold m.mu.
func (m *manager) snapshotLocked() (models.SyncStatus, []StatusListener) {
	m.status.IsOnline = m.monitor.Online()
	subs := make([]StatusListener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		subs = append(subs, fn)
	}
	return m.status.Clone(), subs
}

func (m *manager) notify(status models.SyncStatus, subs []StatusListener) {
	for _, fn := range subs {
		fn(status)
	}
}

// ── Queue inspection and dead letters ────────────────────────────────────────

func (m *manager) GetPendingActions(ctx context.Context) ([]models.PendingAction, error) {
	return m.actions.GetAll(ctx)
}

func (m *manager) DeadLetters(ctx context.Context) ([]models.PendingAction, error) {
	unsynced, err := m.actions.GetUnsynced(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pending actions: %w", err)
	}

	var dead []models.PendingAction
	for _, action := range unsynced {
		if action.RetryCount >= maxRetries {
			dead = append(dead, action)
		}
	}
	return dead, nil
}

func (m *manager) RequeueDeadLetter(ctx context.Context, id string) error {
	if err := m.requireDeadLettered(ctx, id); err != nil {
		return err
	}
	if err := m.actions.ResetRetries(ctx, id); err != nil {
		return fmt.Errorf("reset retries for %s: %w", id, err)
	}

	m.refreshMirror(ctx)
	m.broadcast()

	if m.monitor.Online() {
		go func() { _ = m.SyncPendingActions(context.WithoutCancel(ctx)) }()
	}
	return nil
}

func (m *manager) DiscardDeadLetter(ctx context.Context, id string) error {
	if err := m.requireDeadLettered(ctx, id); err != nil {
		return err
	}
	if err := m.actions.Delete(ctx, id); err != nil {
		return fmt.Errorf("discard action %s: %w", id, err)
	}
	m.logger.Info().Str("action_id", id).Msg("dead-lettered action discarded")

	m.refreshMirror(ctx)
	m.broadcast()
	return nil
}

func (m *manager) requireDeadLettered(ctx context.Context, id string) error {
	action, err := m.actions.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load action %s: %w", id, err)
	}
	if action.Synced || action.RetryCount < maxRetries {
		return fmt.Errorf("%w: %s", ErrNotDeadLettered, id)
	}
	return nil
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

// Start restores the mirror from the durable queue, subscribes to
// connectivity transitions and launches the periodic replay loop.
func (m *manager) Start(ctx context.Context) {
	m.Stop()

	m.refreshMirror(ctx)
	m.broadcast()

	m.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.unsubscribe = m.monitor.Subscribe(m.onConnectivityChange(loopCtx))
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		t := time.NewTicker(m.workers.SyncInterval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				if m.monitor.Online() && m.pendingCount() > 0 {
					_ = m.SyncPendingActions(loopCtx)
				}
			}
		}
	}()
}

// Stop halts the replay loop and detaches from the monitor. Safe to call
// when the manager is not running.
func (m *manager) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	unsubscribe := m.unsubscribe
	m.cancel = nil
	m.unsubscribe = nil
	m.stopEnqueueTimerLocked()
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// onConnectivityChange reacts to monitor transitions. Coming back online
// clears accumulated errors and replays immediately; going offline only
// updates the published status.
func (m *manager) onConnectivityChange(ctx context.Context) connectivity.Subscriber {
	return func(online, changed bool) {
		if !changed {
			return
		}

		m.mu.Lock()
		if online {
			m.status.Errors = nil
		}
		snapshot, subs := m.snapshotLocked()
		m.mu.Unlock()

		m.notify(snapshot, subs)

		if online {
			go func() { _ = m.SyncPendingActions(ctx) }()
		}
	}
}

// ── Mirror maintenance ───────────────────────────────────────────────────────

// refreshMirror reloads the in-memory view of unsynced actions from the
// durable store. Load failures leave the previous mirror in place.
func (m *manager) refreshMirror(ctx context.Context) {
	unsynced, err := m.actions.GetUnsynced(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("refresh pending mirror failed")
		return
	}
	m.setMirror(unsynced)
}

func (m *manager) setMirror(actions []models.PendingAction) {
	m.mu.Lock()
	m.mirror = actions
	m.status.PendingCount = len(actions)
	m.mu.Unlock()
}

func (m *manager) pendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mirror)
}

func (m *manager) broadcast() {
	m.mu.Lock()
	snapshot, subs := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snapshot, subs)
}

func (m *manager) stopEnqueueTimerLocked() {
	if m.enqueueTimer != nil {
		m.enqueueTimer.Stop()
		m.enqueueTimer = nil
	}
}
