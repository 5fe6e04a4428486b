package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/modstanding/internal/config"
	"github.com/osse101/modstanding/internal/metrics"
	"github.com/osse101/modstanding/internal/notify"
	"github.com/osse101/modstanding/internal/repository"
	"github.com/osse101/modstanding/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	Events         *EventSystem
	PunishmentRepo repository.Punishment
	Standing       worker.Recomputer
	Config         *config.Config
}

// Workers are the background components started by RegisterEventHandlers
type Workers struct {
	Pool   *worker.Pool
	Expiry *worker.ExpiryWorker
}

// RegisterEventHandlers sets up all event subscribers:
// - metrics collector
// - standing recompute on every punishment mutation
// - expiry timers for started punishments
// - Discord escalation alerts, when configured
func RegisterEventHandlers(ctx context.Context, deps EventHandlerDependencies) (*Workers, error) {
	bus := deps.Events.Bus

	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	pool := worker.NewPool(deps.Config.WorkerCount, deps.Config.WorkerQueueSize)
	pool.Start()
	worker.NewRecomputeDispatcher(pool, deps.Standing).Subscribe(bus)
	slog.Info(LogMsgRecomputeRegistered, "workers", deps.Config.WorkerCount)

	expiry := worker.NewExpiryWorker(deps.PunishmentRepo, deps.Events.Publisher)
	expiry.Subscribe(bus)
	if err := expiry.Start(ctx); err != nil {
		pool.Stop()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedStartExpiryWorker, err)
	}
	slog.Info(LogMsgExpiryWorkerStarted)

	notifier, err := notify.NewDiscordNotifier(notify.Config{
		BotToken:     deps.Config.DiscordBotToken,
		WebhookID:    deps.Config.DiscordWebhookID,
		WebhookToken: deps.Config.DiscordWebhookToken,
	})
	if err != nil {
		_ = expiry.Shutdown(ctx)
		pool.Stop()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateNotifier, err)
	}
	if notifier != nil {
		notifier.Subscribe(bus)
		slog.Info(LogMsgNotifierRegistered)
	}

	return &Workers{Pool: pool, Expiry: expiry}, nil
}
