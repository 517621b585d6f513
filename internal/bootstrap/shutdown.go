package bootstrap

import (
	"context"
	"log/slog"

	"github.com/mintforge/packvault/internal/database"
	"github.com/mintforge/packvault/internal/server"
)

// ShutdownComponents holds everything that needs graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	Events *EventSystem
	DBPool database.Pool
}

// GracefulShutdown tears the application down in dependency order:
//  1. HTTP server stops accepting new requests and finishes in-flight ones.
//  2. The event publisher drains pending retries so committed allocations
//     still get their events (or a dead-letter entry).
//  3. The retry pool, dead-letter file and database pool close last.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Events != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		components.Events.Publisher.Drain()
		components.Events.RetryPool.Stop()
		if err := components.Events.DeadLetter.Close(); err != nil {
			slog.Error("Dead-letter writer close failed", "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
