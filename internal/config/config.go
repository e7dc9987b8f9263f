// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the sync
// subsystem. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional JSON
// file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the role label used in
	// log entries and the local log file path.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds network settings for the remote API and the
	// connectivity probes.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds timing settings for the background sync and probe
	// loops.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Role is the label attached to every log entry produced by this
	// process (e.g. "qs-sync").
	// Env: APP_ROLE
	Role string `env:"ROLE"`

	// LogFilePath, when non-empty, redirects logging to a rotating file
	// at this path instead of stdout.
	// Env: APP_LOG_FILE
	LogFilePath string `env:"LOG_FILE"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB contains local SQLite connection settings.
type DB struct {
	// DSN is the SQLite file path used for the durable local store.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds network addresses and timeouts used by the HTTP transport
// layer and the connectivity prober.
type Adapter struct {
	// BaseURL is the remote API base URL replayed actions are sent to.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// ProbeURL is the external, highly-available resource the connectivity
	// prober requests first.
	// Env: ADAPTER_PROBE_URL
	ProbeURL string `env:"PROBE_URL"`

	// HealthURL is the local health endpoint used as a cache-busted
	// fallback when the external probe fails.
	// Env: ADAPTER_HEALTH_URL
	HealthURL string `env:"HEALTH_URL"`

	// RequestTimeout bounds every outbound replay request so one hung
	// call cannot stall a whole replay pass.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ProbeTimeout is the hard timeout for a single connectivity probe.
	// Env: ADAPTER_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`
}

// Workers contains timing settings for the background loops.
type Workers struct {
	// SyncInterval defines how often a replay pass is attempted while
	// online and actions are pending.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ProbeInterval defines how often the connectivity monitor probes.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// OfflineDebounce delays publishing a probe-detected offline
	// transition to filter transient blips.
	// Env: WORKERS_OFFLINE_DEBOUNCE
	OfflineDebounce time.Duration `env:"OFFLINE_DEBOUNCE"`

	// EnqueueDelay batches rapid-fire enqueues into one replay pass.
	// Env: WORKERS_ENQUEUE_DELAY
	EnqueueDelay time.Duration `env:"ENQUEUE_DELAY"`
}

// GetStructuredConfig loads, merges, and validates the subsystem
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
