package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cosmoforge/minecore/internal/accrual"
	"github.com/cosmoforge/minecore/internal/authority"
	"github.com/cosmoforge/minecore/internal/bootstrap"
	"github.com/cosmoforge/minecore/internal/clock"
	"github.com/cosmoforge/minecore/internal/config"
	"github.com/cosmoforge/minecore/internal/database"
	"github.com/cosmoforge/minecore/internal/database/postgres"
	"github.com/cosmoforge/minecore/internal/eventlog"
	"github.com/cosmoforge/minecore/internal/exchange"
	"github.com/cosmoforge/minecore/internal/notify"
	"github.com/cosmoforge/minecore/internal/reconcile"
	"github.com/cosmoforge/minecore/internal/scheduler"
	"github.com/cosmoforge/minecore/internal/server"
	"github.com/cosmoforge/minecore/internal/stake"
	"github.com/cosmoforge/minecore/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), DBMaxConns, DBMaxIdleTime, DBMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}

	auditService := eventlog.NewService(postgres.NewAuditRepository(dbPool))

	hub := notify.NewHub()
	hub.Start()

	clk := clock.NewRealClock()
	authClient := authority.NewClient(cfg.AuthorityBaseURL, cfg.AuthorityAPIKey, cfg.AuthorityTimeout)

	// The reconciliation client and its sinks reference each other, so the
	// client is built first and bound once the sinks exist.
	reconcileClient := reconcile.NewClient(authClient)
	simulator := accrual.NewSimulator(clk, reconcileClient, hub, cfg.TickInterval)
	stakeService := stake.NewService(authClient, reconcileClient, hub, auditService, clk, cfg.StakePenaltyRate)
	exchangeService := exchange.NewService(authClient, reconcileClient, auditService, exchange.DefaultRates())
	reconcileClient.Bind(simulator, stakeService)

	simulator.Start()

	workerPool := worker.NewPool(WorkerCount, WorkerQueueSize)
	workerPool.Start()

	sched := scheduler.New(workerPool)
	sched.Schedule(cfg.RefreshInterval, reconcile.NewRefreshJob(reconcileClient))
	sched.Schedule(cfg.StakeRefreshInterval, stake.NewRefreshJob(stakeService))
	sched.Schedule(cfg.RatesRefreshInterval, exchange.NewRefreshJob(exchangeService, authClient))
	sched.Schedule(EventLogCleanupInterval, eventlog.NewCleanupJob(auditService, cfg.EventLogRetention))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool,
		reconcileClient, simulator, stakeService, exchangeService, auditService, hub)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:          srv,
		Scheduler:       sched,
		WorkerPool:      workerPool,
		Simulator:       simulator,
		ReconcileClient: reconcileClient,
		Hub:             hub,
		DBPool:          dbPool,
	})
}

// Tunables with no deployment-specific reason to come from the environment.
const (
	DBMaxConns    = 10
	DBMaxIdleTime = 5 * time.Minute
	DBMaxLifetime = 30 * time.Minute

	WorkerCount     = 4
	WorkerQueueSize = 64

	EventLogCleanupInterval = 24 * time.Hour
	ShutdownTimeout         = 30 * time.Second
)
