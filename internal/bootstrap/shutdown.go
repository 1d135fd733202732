package bootstrap

import (
	"context"

	"github.com/qaz17899/game-hub/internal/event"
	"github.com/qaz17899/game-hub/internal/logger"
	"github.com/qaz17899/game-hub/internal/physics"
	"github.com/qaz17899/game-hub/internal/plinko"
	"github.com/qaz17899/game-hub/internal/server"
	"github.com/qaz17899/game-hub/internal/sse"
	"github.com/qaz17899/game-hub/internal/storage"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	PlinkoService      plinko.Service
	Integrator         physics.Integrator
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Store              storage.Store
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Round controller (drain balls still in flight)
// 3. Physics integrator (stop the tick loop feeding the controller)
// 4. SSE hub (disconnect streaming clients)
// 5. Event publisher (flush pending events to ensure consistency)
// 6. Storage (close connections after the final balance write)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		logger.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if err := components.PlinkoService.Shutdown(ctx); err != nil {
		logger.Error(LogMsgRoundControllerFailed, "error", err)
	}

	if err := components.Integrator.Stop(ctx); err != nil {
		logger.Error(LogMsgIntegratorFailed, "error", err)
	}

	components.Hub.Stop()

	logger.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		logger.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	components.Store.Close()

	logger.Info(LogMsgServerStopped)
}
