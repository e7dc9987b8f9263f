package client

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/enki-somer/qs-sync/internal/connectivity"
	"github.com/enki-somer/qs-sync/internal/logger"
	"github.com/enki-somer/qs-sync/internal/service"
	"github.com/enki-somer/qs-sync/internal/store"
	"github.com/enki-somer/qs-sync/internal/workers"
	"github.com/enki-somer/qs-sync/models"
)

// App is the composition root of the sync runtime.
type App struct {
	storages *store.Storages
	manager  service.SyncManager
	runtime  *workers.Workers
	logger   *logger.Logger
}

func NewApp(
	storages *store.Storages,
	monitor connectivity.Monitor,
	manager service.SyncManager,
	log *logger.Logger,
) *App {
	return &App{
		storages: storages,
		manager:  manager,
		// The monitor starts first so the manager subscribes to a live feed,
		// and stops last.
		runtime: workers.New(monitor, manager),
		logger:  log,
	}
}

// Run starts the connectivity monitor and the sync manager and blocks until
// ctx is cancelled or the process receives SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.runtime.Start(ctx)
	unsubscribe := a.manager.OnStatusChange(a.logStatus)

	a.logger.Info().Msg("sync runtime started")
	<-ctx.Done()
	a.logger.Info().Msg("shutting down")

	// Workers must be fully stopped before the database handle goes away;
	// a replay pass may still be writing bookkeeping rows.
	unsubscribe()
	a.runtime.Stop()

	return a.storages.Close()
}

func (a *App) logStatus(status models.SyncStatus) {
	a.logger.Debug().
		Bool("online", status.IsOnline).
		Int("pending", status.PendingCount).
		Bool("sync_in_progress", status.SyncInProgress).
		Msg("sync status changed")
}
