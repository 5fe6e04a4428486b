package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/modstanding/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  *server.Server
	Workers *Workers
	Events  *EventSystem
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Expiry timers and the recompute pool
// 3. Event publisher (flush pending retries to the dead-letter file)
// 4. External event transport
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if w := components.Workers; w != nil {
		if err := w.Expiry.Shutdown(ctx); err != nil {
			slog.Error(LogMsgExpiryWorkerFailed, "error", err)
		}
		w.Pool.Stop()
	}

	if ev := components.Events; ev != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := ev.Publisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
		if ev.Transport != nil {
			if err := ev.Transport.Close(); err != nil {
				slog.Error(LogMsgTransportCloseFailed, "error", err)
			}
		}
	}

	slog.Info(LogMsgServerStopped)
}
