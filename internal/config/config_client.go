package config

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied by [GetClientConfig] for fields left unset by every
// configuration source.
const (
	DefaultRole            = "qs-sync"
	DefaultProbeURL        = "https://www.gstatic.com/generate_204"
	DefaultRequestTimeout  = 15 * time.Second
	DefaultProbeTimeout    = 3 * time.Second
	DefaultSyncInterval    = 30 * time.Second
	DefaultProbeInterval   = 5 * time.Second
	DefaultOfflineDebounce = 2 * time.Second
	DefaultEnqueueDelay    = 500 * time.Millisecond
)

// ClientApp holds application-level settings for the sync client.
type ClientApp struct {
	// Role is the label attached to log entries.
	Role string
	// LogFilePath, when non-empty, selects the rotating file logger.
	LogFilePath string
}

// ClientAdapter holds network settings used by the transport layer and the
// connectivity prober.
type ClientAdapter struct {
	// BaseURL is the remote API base URL.
	BaseURL string
	// ProbeURL is the external connectivity probe target.
	ProbeURL string
	// HealthURL is the local fallback probe target.
	HealthURL string
	// RequestTimeout bounds each replay request.
	RequestTimeout time.Duration
	// ProbeTimeout bounds each connectivity probe.
	ProbeTimeout time.Duration
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	// DSN is the SQLite file path used by the durable store.
	DSN string
}

// ClientStorage groups local storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains background loop settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background replay pass runs.
	SyncInterval time.Duration
	// ProbeInterval defines how often the connectivity monitor probes.
	ProbeInterval time.Duration
	// OfflineDebounce delays publishing probe-detected offline status.
	OfflineDebounce time.Duration
	// EnqueueDelay batches rapid enqueues into one replay pass.
	EnqueueDelay time.Duration
}

// ClientConfig is the top-level sync client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level settings.
	App ClientApp
	// Adapter contains transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains local storage settings.
	Storage ClientStorage
	// Workers contains background loop settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the sync client, applies defaults for unset timing fields, and
// validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Role:        cfg.App.Role,
			LogFilePath: cfg.App.LogFilePath,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			ProbeURL:       cfg.Adapter.ProbeURL,
			HealthURL:      cfg.Adapter.HealthURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			ProbeTimeout:   cfg.Adapter.ProbeTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:    cfg.Workers.SyncInterval,
			ProbeInterval:   cfg.Workers.ProbeInterval,
			OfflineDebounce: cfg.Workers.OfflineDebounce,
			EnqueueDelay:    cfg.Workers.EnqueueDelay,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

// applyDefaults fills in every unset field that has a sensible default.
// Only the API base URL and the storage DSN have no default and stay
// mandatory.
func (cfg *ClientConfig) applyDefaults() {
	if cfg.App.Role == "" {
		cfg.App.Role = DefaultRole
	}
	if cfg.Adapter.ProbeURL == "" {
		cfg.Adapter.ProbeURL = DefaultProbeURL
	}
	if cfg.Adapter.HealthURL == "" && cfg.Adapter.BaseURL != "" {
		cfg.Adapter.HealthURL = strings.TrimRight(cfg.Adapter.BaseURL, "/") + "/health"
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.ProbeTimeout <= 0 {
		cfg.Adapter.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.ProbeInterval <= 0 {
		cfg.Workers.ProbeInterval = DefaultProbeInterval
	}
	if cfg.Workers.OfflineDebounce <= 0 {
		cfg.Workers.OfflineDebounce = DefaultOfflineDebounce
	}
	if cfg.Workers.EnqueueDelay <= 0 {
		cfg.Workers.EnqueueDelay = DefaultEnqueueDelay
	}
}
