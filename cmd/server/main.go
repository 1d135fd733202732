package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qaz17899/game-hub/internal/board"
	"github.com/qaz17899/game-hub/internal/bootstrap"
	"github.com/qaz17899/game-hub/internal/config"
	"github.com/qaz17899/game-hub/internal/handler"
	"github.com/qaz17899/game-hub/internal/history"
	"github.com/qaz17899/game-hub/internal/ledger"
	"github.com/qaz17899/game-hub/internal/logger"
	"github.com/qaz17899/game-hub/internal/metrics"
	"github.com/qaz17899/game-hub/internal/physics"
	"github.com/qaz17899/game-hub/internal/plinko"
	"github.com/qaz17899/game-hub/internal/server"
	"github.com/qaz17899/game-hub/internal/sse"
)

const ServiceName = "game-hub"

// ShutdownTimeout must exceed the flight-time watchdog so a ball dropped
// just before the signal still settles (or voids with a refund) before the
// process exits.
const ShutdownTimeout = 35 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.NewConfig(
		cfg.LogLevel, cfg.LogFormat, ServiceName, cfg.Version, cfg.Environment, false))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.BuildStorage(ctx, cfg)
	if err != nil {
		logger.Error("Storage initialization failed", "error", err)
		os.Exit(1)
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem()
	if err != nil {
		logger.Error("Event system initialization failed", "error", err)
		os.Exit(1)
	}

	// Services publish through the resilient publisher; read-side
	// collaborators subscribe on the underlying bus.
	ledgerService := ledger.NewService(store, publisher, cfg.StartingBalance)

	layout, err := board.New(cfg.Plinko)
	if err != nil {
		logger.Error("Invalid board configuration", "error", err)
		os.Exit(1)
	}

	integrator := physics.NewSim(layout, cfg.Plinko.TickInterval)
	integrator.Start()

	plinkoService := plinko.NewService(cfg.Plinko, layout, ledgerService, integrator, publisher)

	historyService, err := history.NewService(history.DefaultSize, eventBus)
	if err != nil {
		logger.Error("History initialization failed", "error", err)
		os.Exit(1)
	}

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, eventBus).Subscribe()

	if err := metrics.NewEventMetricsCollector().Register(eventBus); err != nil {
		logger.Error("Metrics collector registration failed", "error", err)
		os.Exit(1)
	}

	handler.InitValidator()

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, store, ledgerService, plinkoService, historyService, hub)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		// fall through to graceful shutdown
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		PlinkoService:      plinkoService,
		Integrator:         integrator,
		Hub:                hub,
		ResilientPublisher: publisher,
		Store:              store,
	})
}
