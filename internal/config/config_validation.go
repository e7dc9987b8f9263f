// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package config

import "strings"

// validate checks that the final [ClientConfig] satisfies all invariants
// before it is used at startup. The queue must survive process restarts, so
// an in-memory SQLite DSN is rejected alongside an empty one.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval == 0 || cfg.Workers.ProbeInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
