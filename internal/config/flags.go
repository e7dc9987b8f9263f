package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-base-url remote API base URL
//	-probe-url external connectivity probe URL
//	-health-url local health endpoint for the fallback probe
//	-d database DSN (SQLite file path)
//	-c/-config json file path with configs
//	-log-file rotating log file path
//	-request-timeout replay request timeout (e.g., "30s", "1m")
//	-probe-timeout connectivity probe timeout
//	-sync-interval background replay interval
//	-probe-interval connectivity probe interval
func ParseFlags() *StructuredConfig {
	var baseURL string
	var probeURL string
	var healthURL string
	var databaseDSN string
	var jsonConfigPath string
	var logFilePath string
	var requestTimeout time.Duration
	var probeTimeout time.Duration
	var syncInterval time.Duration
	var probeInterval time.Duration

	flag.StringVar(&baseURL, "base-url", "", "Remote API base URL")
	flag.StringVar(&probeURL, "probe-url", "", "External connectivity probe URL")
	flag.StringVar(&healthURL, "health-url", "", "Local health endpoint URL")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&logFilePath, "log-file", "", "Rotating log file path")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Replay request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&probeTimeout, "probe-timeout", 0, "Connectivity probe timeout")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background replay interval")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogFilePath: logFilePath,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			ProbeURL:       probeURL,
			HealthURL:      healthURL,
			RequestTimeout: requestTimeout,
			ProbeTimeout:   probeTimeout,
		},
		Workers: Workers{
			SyncInterval:  syncInterval,
			ProbeInterval: probeInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
