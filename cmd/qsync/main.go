package main

import (
	"context"
	"fmt"

	"github.com/enki-somer/qs-sync/internal/adapter"
	"github.com/enki-somer/qs-sync/internal/client"
	"github.com/enki-somer/qs-sync/internal/config"
	"github.com/enki-somer/qs-sync/internal/connectivity"
	"github.com/enki-somer/qs-sync/internal/logger"
	"github.com/enki-somer/qs-sync/internal/service"
	"github.com/enki-somer/qs-sync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger(config.DefaultRole).Fatal().Err(err).Msg("error getting configs")
	}

	log := newLogger(cfg.App)

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	api := adapter.NewHTTPAPIClient(cfg.Adapter)
	prober := connectivity.NewHTTPProber(cfg.Adapter)
	monitor := connectivity.NewMonitor(prober, cfg.Workers, log)
	manager := service.NewManager(storages.Actions, api, monitor, *cfg, log)

	app := client.NewApp(storages, monitor, manager, log)
	if err = app.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func newLogger(app config.ClientApp) *logger.Logger {
	if app.LogFilePath != "" {
		return logger.NewFileLogger(app.Role, app.LogFilePath)
	}
	return logger.NewLogger(app.Role)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
