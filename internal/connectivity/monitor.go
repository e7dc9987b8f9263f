// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

// Package connectivity tracks whether the backend is reachable.
//
// Reachability is decided by active probes plus authoritative reports from
// the surrounding application (for example a transport-level failure seen
// by the API client). Going offline is deliberately conservative: a single
// failed probe never flips the state, and even repeated failures are held
// back by a debounce window so a brief blip does not cascade into an
// offline/online flap. Going online takes one successful probe and is then
// immediate; "online" hints from the application are probe-verified, never
// trusted as-is.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/enki-somer/qs-sync/internal/config"
	"github.com/enki-somer/qs-sync/internal/logger"
)

// offlineFailureThreshold is how many consecutive probe failures are needed
// before the debounce timer may declare the link down.
const offlineFailureThreshold = 2

// Subscriber receives the current state after every evaluation. changed is
// true only when this evaluation flipped the state.
type Subscriber func(online bool, changed bool)

// Monitor owns the online/offline state for the whole process.
type Monitor interface {
	Start(ctx context.Context)
	Stop()

	// CheckNow runs a probe immediately and returns the resulting state.
	CheckNow(ctx context.Context) bool

	// ReportOnline handles an "online" hint from the surrounding
	// application. Such hints are unreliable, so the monitor verifies with
	// a probe and transitions only on success.
	ReportOnline(ctx context.Context)
	// ReportOffline feeds an authoritative offline observation (for
	// example a transport-level failure seen by the API client). It takes
	// effect immediately, bypassing threshold and debounce.
	ReportOffline()

	Online() bool
	Subscribe(fn Subscriber) (unsubscribe func())
}

type monitor struct {
	prober   Prober
	interval time.Duration
	debounce time.Duration
	logger   *logger.Logger

	mu           sync.Mutex
	online       bool
	failures     int
	offlineTimer *time.Timer
	subscribers  map[int]Subscriber
	nextSubID    int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitor builds a Monitor that starts out optimistic (online) until the
// first probe says otherwise.
func NewMonitor(prober Prober, cfg config.ClientWorkers, log *logger.Logger) Monitor {
	return &monitor{
		prober:      prober,
		interval:    cfg.ProbeInterval,
		debounce:    cfg.OfflineDebounce,
		logger:      log,
		online:      true,
		subscribers: make(map[int]Subscriber),
	}
}

// Start launches the periodic probe loop. Calling Start on a running monitor
// restarts the loop.
func (m *monitor) Start(ctx context.Context) {
	m.Stop()

	m.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		t := time.NewTicker(m.interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				m.CheckNow(loopCtx)
			}
		}
	}()
}

// Stop halts the probe loop and waits for it to exit. Safe to call when the
// monitor is not running.
func (m *monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *monitor) CheckNow(ctx context.Context) bool {
	err := m.prober.Probe(ctx)

	m.mu.Lock()
	if err == nil {
		m.failures = 0
		m.stopOfflineTimerLocked()
		changed := m.setOnlineLocked(true)
		online := m.online
		subs := m.snapshotSubscribersLocked()
		m.mu.Unlock()

		m.notify(subs, online, changed)
		return online
	}

	m.failures++
	m.logger.Debug().Int("consecutive_failures", m.failures).Err(err).Msg("connectivity probe failed")

	if m.online && m.failures >= offlineFailureThreshold && m.offlineTimer == nil {
		m.offlineTimer = time.AfterFunc(m.debounce, m.confirmOffline)
	}
	online := m.online
	subs := m.snapshotSubscribersLocked()
	m.mu.Unlock()

	// State did not change yet; subscribers still hear about the evaluation.
	m.notify(subs, online, false)
	return online
}

// confirmOffline fires when the debounce window elapses without a successful
// probe in between.
func (m *monitor) confirmOffline() {
	m.mu.Lock()
	m.offlineTimer = nil
	if m.failures < offlineFailureThreshold {
		m.mu.Unlock()
		return
	}
	changed := m.setOnlineLocked(false)
	online := m.online
	subs := m.snapshotSubscribersLocked()
	m.mu.Unlock()

	m.notify(subs, online, changed)
}

// ReportOnline never trusts the hint by itself: a probe must succeed before
// the state flips, so a stale event on a dead link changes nothing.
func (m *monitor) ReportOnline(ctx context.Context) {
	m.CheckNow(ctx)
}

func (m *monitor) ReportOffline() {
	m.mu.Lock()
	m.failures = offlineFailureThreshold
	m.stopOfflineTimerLocked()
	changed := m.setOnlineLocked(false)
	online := m.online
	subs := m.snapshotSubscribersLocked()
	m.mu.Unlock()

	m.notify(subs, online, changed)
}

func (m *monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *monitor) Subscribe(fn Subscriber) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// setOnlineLocked flips the state and reports whether it actually changed.
// Callers must hold m.mu.
func (m *monitor) setOnlineLocked(online bool) bool {
	if m.online == online {
		return false
	}
	m.online = online
	m.logger.Info().Bool("online", online).Msg("connectivity state changed")
	return true
}

func (m *monitor) stopOfflineTimerLocked() {
	if m.offlineTimer != nil {
		m.offlineTimer.Stop()
		m.offlineTimer = nil
	}
}

func (m *monitor) snapshotSubscribersLocked() []Subscriber {
	subs := make([]Subscriber, 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

// notify runs outside the lock so a subscriber may call back into the
// monitor without deadlocking.
func (m *monitor) notify(subs []Subscriber, online, changed bool) {
	for _, fn := range subs {
		fn(online, changed)
	}
}
