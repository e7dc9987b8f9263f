// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package client

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enki-somer/qs-sync/internal/config"
	"github.com/enki-somer/qs-sync/internal/connectivity"
	"github.com/enki-somer/qs-sync/internal/logger"
	"github.com/enki-somer/qs-sync/internal/service"
	"github.com/enki-somer/qs-sync/internal/store"
	"github.com/enki-somer/qs-sync/models"
)

// shutdownLog records lifecycle events across goroutines.
type shutdownLog struct {
	mu     sync.Mutex
	events []string
}

func (l *shutdownLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *shutdownLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

type appStubMonitor struct {
	onStop func()
}

func (s *appStubMonitor) Start(context.Context)              {}
func (s *appStubMonitor) Stop()                              { s.onStop() }
func (s *appStubMonitor) CheckNow(context.Context) bool      { return true }
func (s *appStubMonitor) ReportOnline(context.Context)       {}
func (s *appStubMonitor) ReportOffline()                     {}
func (s *appStubMonitor) Online() bool                       { return true }
func (s *appStubMonitor) Subscribe(connectivity.Subscriber) func() {
	return func() {}
}

type appStubManager struct {
	started atomic.Bool
	onStop  func()
}

func (s *appStubManager) QueueAction(context.Context, models.PendingAction) (string, error) {
	return "", nil
}
func (s *appStubManager) SyncPendingActions(context.Context) error { return nil }
func (s *appStubManager) ForceSync(context.Context) error          { return nil }
func (s *appStubManager) Status() models.SyncStatus                { return models.SyncStatus{} }
func (s *appStubManager) OnStatusChange(service.StatusListener) func() {
	return func() {}
}
func (s *appStubManager) GetPendingActions(context.Context) ([]models.PendingAction, error) {
	return nil, nil
}
func (s *appStubManager) DeadLetters(context.Context) ([]models.PendingAction, error) {
	return nil, nil
}
func (s *appStubManager) RequeueDeadLetter(context.Context, string) error { return nil }
func (s *appStubManager) DiscardDeadLetter(context.Context, string) error { return nil }
func (s *appStubManager) Start(context.Context)                           { s.started.Store(true) }
func (s *appStubManager) Stop()                                           { s.onStop() }

// TestApp_Run_StopsWorkersBeforeClosingStorages guards the shutdown order:
// a replay pass may still be writing bookkeeping rows when the process goes
// down, so the runtime must be fully stopped before the database handle is
// released.
func TestApp_Run_StopsWorkersBeforeClosingStorages(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "qs_test.db")
	storages, err := store.NewStorages(config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)

	events := &shutdownLog{}
	mon := &appStubMonitor{onStop: func() { events.add("monitor stopped") }}
	mgr := &appStubManager{}
	mgr.onStop = func() {
		// The store must still be usable while workers shut down.
		_, countErr := storages.Actions.CountUnsynced(context.Background())
		assert.NoError(t, countErr, "storages closed before the manager stopped")
		events.add("manager stopped")
	}

	app := NewApp(storages, mon, mgr, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, mgr.started.Load, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case runErr := <-done:
		require.NoError(t, runErr)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	// Manager goes down first (reverse start order), then the monitor, and
	// only then the database handle.
	assert.Equal(t, []string{"manager stopped", "monitor stopped"}, events.all())
	_, err = storages.Actions.CountUnsynced(context.Background())
	assert.Error(t, err, "storages must be closed once Run returns")
}
