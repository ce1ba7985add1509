package bootstrap

import (
	"context"
	"log/slog"

	"github.com/cosmoforge/minecore/internal/accrual"
	"github.com/cosmoforge/minecore/internal/database"
	"github.com/cosmoforge/minecore/internal/notify"
	"github.com/cosmoforge/minecore/internal/reconcile"
	"github.com/cosmoforge/minecore/internal/scheduler"
	"github.com/cosmoforge/minecore/internal/server"
	"github.com/cosmoforge/minecore/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server          *server.Server
	Scheduler       *scheduler.Scheduler
	WorkerPool      *worker.Pool
	Simulator       *accrual.Simulator
	ReconcileClient *reconcile.Client
	Hub             *notify.Hub
	DBPool          database.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler, worker pool and simulator (stop ticking, drain the queue)
// 3. Tracked players (drop local simulation state for every session)
// 4. Event hub (close subscriber streams)
// 5. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgShuttingDownWorkers)
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}
	if components.Simulator != nil {
		components.Simulator.Stop()
	}

	if components.ReconcileClient != nil {
		slog.Info(LogMsgUntrackingPlayers)
		for _, playerID := range components.ReconcileClient.TrackedPlayers() {
			components.ReconcileClient.Untrack(ctx, playerID)
		}
	}

	if components.Hub != nil {
		slog.Info(LogMsgShuttingDownHub)
		components.Hub.Stop()
	}

	if components.DBPool != nil {
		slog.Info(LogMsgClosingDatabase)
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
