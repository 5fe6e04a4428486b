package worker

import (
	"context"
	"time"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/event"
	"github.com/osse101/modstanding/internal/logger"
	"github.com/osse101/modstanding/internal/metrics"
	"github.com/osse101/modstanding/internal/punishment"
	"github.com/osse101/modstanding/internal/repository"
)

// ExpiryWorker keeps one timer per running punishment at its effective expiry.
// When a timer fires the punishment is reloaded and reduced again; if it is no
// longer in force a punishment.expired event is published.
type ExpiryWorker struct {
	BaseWorker
	repo      repository.Punishment
	publisher event.Publisher
	now       func() time.Time
}

// NewExpiryWorker creates a new ExpiryWorker
func NewExpiryWorker(repo repository.Punishment, publisher event.Publisher) *ExpiryWorker {
	w := &ExpiryWorker{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
	w.init()
	return w
}

// Start schedules every running punishment that still has an expiry ahead
func (w *ExpiryWorker) Start(ctx context.Context) error {
	log := logger.FromContext(ctx)

	started, err := w.repo.ListStarted(ctx)
	if err != nil {
		log.Error(LogMsgExpiryStartupFailed, "error", err)
		return err
	}

	now := w.now()
	scheduled := 0
	for _, p := range started {
		es := punishment.Reduce(p, now)
		// expiries missed while the service was down are not replayed
		if es.Expiry == nil || !punishment.IsCurrentlyActive(p, es, now) {
			continue
		}
		w.scheduleAt(p.ID, *es.Expiry)
		scheduled++
	}
	log.Info(LogMsgExpiryStartupLoaded, "count", scheduled)
	return nil
}

// Subscribe listens for events that start a punishment or move its expiry
func (w *ExpiryWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.PunishmentStarted, w.handleStarted)
	bus.Subscribe(event.PunishmentModified, w.handleModified)
}

func (w *ExpiryWorker) handleStarted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.PunishmentStartedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgExpiryPayloadInvalid, "event_type", evt.Type, "error", err)
		return nil
	}
	if payload.ExpiresAt != nil {
		w.scheduleAt(payload.PunishmentID, time.UnixMilli(*payload.ExpiresAt))
	}
	return nil
}

func (w *ExpiryWorker) handleModified(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.PunishmentModifiedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgExpiryPayloadInvalid, "event_type", evt.Type, "error", err)
		return nil
	}

	// pardons, flag toggles on inactive records and permanent changes leave nothing to time
	if !payload.Active || payload.ExpiresAt == nil {
		w.cancel(payload.PunishmentID)
		return nil
	}
	w.scheduleAt(payload.PunishmentID, time.UnixMilli(*payload.ExpiresAt))
	return nil
}

func (w *ExpiryWorker) scheduleAt(id string, at time.Time) {
	delay := at.Sub(w.now())
	if delay < 0 {
		delay = 0
	}
	if w.schedule(timerKey(id), delay, func() { w.fire(id) }) {
		logger.Debug(LogMsgExpiryScheduled, logger.AttrKeyPunishmentID, id, "delay", delay)
		metrics.ScheduledExpiryTimers.Set(float64(w.pending()))
	}
}

func (w *ExpiryWorker) cancel(id string) {
	if w.stopTimer(timerKey(id)) {
		logger.Debug(LogMsgExpiryCancelled, logger.AttrKeyPunishmentID, id)
		metrics.ScheduledExpiryTimers.Set(float64(w.pending()))
	}
}

func (w *ExpiryWorker) fire(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultJobTimeout)
	defer cancel()
	log := logger.FromContext(ctx)
	defer metrics.ScheduledExpiryTimers.Set(float64(w.pending()))

	p, err := w.repo.GetPunishment(ctx, id)
	if err != nil {
		log.Error(LogMsgExpiryReloadFailed, logger.AttrKeyPunishmentID, id, "error", err)
		return
	}

	now := w.now()
	es := punishment.Reduce(*p, now)
	if punishment.IsCurrentlyActive(*p, es, now) {
		if es.Expiry != nil {
			log.Info(LogMsgExpiryRescheduled, logger.AttrKeyPunishmentID, id, "expiry", *es.Expiry)
			w.scheduleAt(id, *es.Expiry)
		}
		return
	}
	// a pardon already produced its own event
	if punishment.HasPardon(es.OrderedModifications) || es.Expiry == nil {
		return
	}

	log.Info(LogMsgExpiryFired, logger.AttrKeyPunishmentID, id, logger.AttrKeyPlayerID, p.PlayerID)
	if w.publisher != nil {
		w.publisher.PublishWithRetry(ctx, event.NewPunishmentExpiredEvent(p, *es.Expiry, now))
	}
}

// Shutdown cancels pending timers and waits for in-flight expiries
func (w *ExpiryWorker) Shutdown(ctx context.Context) error {
	err := w.shutdownInternal(ctx, ExpiryWorkerName)
	metrics.ScheduledExpiryTimers.Set(0)
	return err
}
