package metrics

import (
	"context"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/event"
	"github.com/osse101/modstanding/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.AllTypes() {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.PunishmentApplied:
		payload, err := event.DecodePayload[domain.PunishmentAppliedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		PunishmentsApplied.WithLabelValues(payload.Category).Inc()

	case event.PunishmentStarted:
		PunishmentsStarted.Inc()

	case event.PunishmentModified:
		payload, err := event.DecodePayload[domain.PunishmentModifiedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		Modifications.WithLabelValues(payload.ModificationType).Inc()

	case event.PunishmentExpired:
		PunishmentsExpired.Inc()

	case event.StandingChanged:
		payload, err := event.DecodePayload[domain.StandingChangedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		direction := DirectionDown
		if payload.Escalated {
			direction = DirectionUp
		}
		StandingTierChanges.WithLabelValues(payload.Category, direction).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// RecordDefects counts data defects by kind
func RecordDefects(defects []domain.Defect) {
	for _, d := range defects {
		DataDefects.WithLabelValues(string(d.Kind)).Inc()
	}
}
