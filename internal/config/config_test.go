// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_ROLE":     "qs-sync-test",
		"APP_LOG_FILE": "/var/log/qs-sync.log",

		"ADAPTER_BASE_URL":        "http://localhost:8080/api",
		"ADAPTER_PROBE_URL":       "https://probe.example.com/ping",
		"ADAPTER_HEALTH_URL":      "http://localhost:8080/api/health",
		"ADAPTER_REQUEST_TIMEOUT": "30s",
		"ADAPTER_PROBE_TIMEOUT":   "2s",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DATABASE_URI": "/var/data/qs-sync.db",

		"WORKERS_SYNC_INTERVAL":    "45s",
		"WORKERS_PROBE_INTERVAL":   "7s",
		"WORKERS_OFFLINE_DEBOUNCE": "3s",
		"WORKERS_ENQUEUE_DELAY":    "250ms",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "qs-sync-test", cfg.App.Role)
	assert.Equal(t, "/var/log/qs-sync.log", cfg.App.LogFilePath)

	assert.Equal(t, "http://localhost:8080/api", cfg.Adapter.BaseURL)
	assert.Equal(t, "https://probe.example.com/ping", cfg.Adapter.ProbeURL)
	assert.Equal(t, "http://localhost:8080/api/health", cfg.Adapter.HealthURL)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.Adapter.ProbeTimeout)

	assert.Equal(t, "/var/data/qs-sync.db", cfg.Storage.DB.DSN)

	assert.Equal(t, 45*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, 7*time.Second, cfg.Workers.ProbeInterval)
	assert.Equal(t, 3*time.Second, cfg.Workers.OfflineDebounce)
	assert.Equal(t, 250*time.Millisecond, cfg.Workers.EnqueueDelay)
}

func TestParseJSON_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"app": {"role": "json-role"},
		"storage": {"db": {"dsn": "/tmp/local.db"}},
		"adapter": {
			"base_url": "http://api.local",
			"request_timeout": "20s"
		},
		"workers": {"sync_interval": "1m"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-role", cfg.App.Role)
	assert.Equal(t, "/tmp/local.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "http://api.local", cfg.Adapter.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
}

func TestParseJSON_FileMissing(t *testing.T) {
	_, err := parseJSON("/definitely/not/there.json")
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{name: "string form", input: `"90s"`, want: 90 * time.Second},
		{name: "numeric nanoseconds", input: `1000000000`, want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalJSON([]byte(tt.input)))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestClientConfig_ApplyDefaults(t *testing.T) {
	cfg := &ClientConfig{
		Adapter: ClientAdapter{BaseURL: "http://api.local/"},
		Storage: ClientStorage{DB: ClientDB{DSN: "/tmp/qs.db"}},
	}

	cfg.applyDefaults()

	assert.Equal(t, DefaultRole, cfg.App.Role)
	assert.Equal(t, DefaultProbeURL, cfg.Adapter.ProbeURL)
	assert.Equal(t, "http://api.local/health", cfg.Adapter.HealthURL)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultProbeTimeout, cfg.Adapter.ProbeTimeout)
	assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, DefaultProbeInterval, cfg.Workers.ProbeInterval)
	assert.Equal(t, DefaultOfflineDebounce, cfg.Workers.OfflineDebounce)
	assert.Equal(t, DefaultEnqueueDelay, cfg.Workers.EnqueueDelay)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() *ClientConfig {
		cfg := &ClientConfig{
			Adapter: ClientAdapter{BaseURL: "http://api.local"},
			Storage: ClientStorage{DB: ClientDB{DSN: "/tmp/qs.db"}},
		}
		cfg.applyDefaults()
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, valid().validate())
	})

	t.Run("empty DSN rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.DB.DSN = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
	})

	t.Run("in-memory DSN rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.DB.DSN = ":memory:"
		assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
	})

	t.Run("missing base URL rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Adapter.BaseURL = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)
	})

	t.Run("zero sync interval rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Workers.SyncInterval = 0
		assert.ErrorIs(t, cfg.validate(), ErrInvalidWorkerConfigs)
	})
}
