// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package models

import "time"

// SyncStatus is the derived, non-persisted snapshot broadcast to subscribers
// after every enqueue, every replay pass (start and end), and every
// connectivity transition.
type SyncStatus struct {
	// IsOnline mirrors the connectivity monitor's current verdict.
	IsOnline bool `json:"is_online"`

	// PendingCount is the number of queued actions with Synced=false,
	// including those parked at the retry ceiling.
	PendingCount int `json:"pending_count"`

	// SyncInProgress is true while a replay pass is running.
	SyncInProgress bool `json:"sync_in_progress"`

	// LastSyncAttempt is set at the start of every replay pass.
	LastSyncAttempt *time.Time `json:"last_sync_attempt,omitempty"`

	// LastSuccessfulSync is set only when a pass completes with every
	// eligible action confirmed by the server.
	LastSuccessfulSync *time.Time `json:"last_successful_sync,omitempty"`

	// Errors accumulates human-readable replay failures since the last
	// clear (errors are cleared on an offline→online transition).
	Errors []string `json:"errors"`
}

// Clone returns a deep copy safe to hand to subscribers while the manager
// keeps mutating its own status.
func (s SyncStatus) Clone() SyncStatus {
	out := s
	if s.LastSyncAttempt != nil {
		t := *s.LastSyncAttempt
		out.LastSyncAttempt = &t
	}
	if s.LastSuccessfulSync != nil {
		t := *s.LastSuccessfulSync
		out.LastSuccessfulSync = &t
	}
	out.Errors = append([]string(nil), s.Errors...)
	return out
}
