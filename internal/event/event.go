package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/modstanding/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// PlayerID returns the affected player recorded in metadata, or "" when absent
func (e Event) PlayerID() string {
	id, _ := e.GetMetadataValue(MetadataKeyPlayerID).(string)
	return id
}

// Moderation event types
const (
	PunishmentApplied   Type = domain.EventTypePunishmentApplied
	PunishmentStarted   Type = domain.EventTypePunishmentStarted
	PunishmentModified  Type = domain.EventTypePunishmentModified
	PunishmentNoteAdded Type = domain.EventTypePunishmentNoteAdded
	PunishmentExpired   Type = domain.EventTypePunishmentExpired
	StandingChanged     Type = domain.EventTypeStandingChanged
)

// AllTypes lists every event type the service emits
func AllTypes() []Type {
	return []Type{
		PunishmentApplied,
		PunishmentStarted,
		PunishmentModified,
		PunishmentNoteAdded,
		PunishmentExpired,
		StandingChanged,
	}
}

// MutationTypes lists the event types after which a player's standing must be recomputed
func MutationTypes() []Type {
	return []Type{
		PunishmentApplied,
		PunishmentStarted,
		PunishmentModified,
		PunishmentExpired,
	}
}

func newEvent(t Type, playerID, source string, payload interface{}) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: payload,
		Metadata: Metadata{
			MetadataKeyPlayerID: playerID,
			MetadataKeySource:   source,
		},
	}
}

func millis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// Type-safe event constructors

// NewPunishmentAppliedEvent creates a punishment.applied event
func NewPunishmentAppliedEvent(p *domain.PunishmentInstance, category domain.Category, now time.Time) Event {
	payload := domain.PunishmentAppliedPayload{
		PunishmentID: p.ID,
		PlayerID:     p.PlayerID,
		TypeOrdinal:  p.TypeOrdinal,
		Category:     string(category),
		OffenseTier:  string(p.OffenseTier),
		IssuerName:   p.IssuerName,
		DurationMs:   p.OriginalDuration,
		Timestamp:    now.UnixMilli(),
	}
	if p.Severity != nil {
		payload.Severity = string(*p.Severity)
	}
	return newEvent(PunishmentApplied, p.PlayerID, p.IssuerName, payload)
}

// NewPunishmentStartedEvent creates a punishment.started event
func NewPunishmentStartedEvent(p *domain.PunishmentInstance, expiry *time.Time, now time.Time) Event {
	var startedAt int64
	if p.StartedAt != nil {
		startedAt = p.StartedAt.UnixMilli()
	}
	return newEvent(PunishmentStarted, p.PlayerID, "", domain.PunishmentStartedPayload{
		PunishmentID: p.ID,
		PlayerID:     p.PlayerID,
		StartedAt:    startedAt,
		ExpiresAt:    millis(expiry),
		Timestamp:    now.UnixMilli(),
	})
}

// NewPunishmentModifiedEvent creates a punishment.modified event carrying the resulting effective state
func NewPunishmentModifiedEvent(p *domain.PunishmentInstance, m domain.Modification, es domain.EffectiveState, now time.Time) Event {
	return newEvent(PunishmentModified, p.PlayerID, m.IssuerName, domain.PunishmentModifiedPayload{
		PunishmentID:     p.ID,
		PlayerID:         p.PlayerID,
		ModificationID:   m.ID,
		ModificationType: string(m.Type),
		Origin:           string(m.Origin),
		IssuerName:       m.IssuerName,
		Active:           es.Active,
		ExpiresAt:        millis(es.Expiry),
		Timestamp:        now.UnixMilli(),
	})
}

// NewPunishmentNoteAddedEvent creates a punishment.note_added event
func NewPunishmentNoteAddedEvent(p *domain.PunishmentInstance, n domain.Note, now time.Time) Event {
	return newEvent(PunishmentNoteAdded, p.PlayerID, n.IssuerName, domain.PunishmentNoteAddedPayload{
		PunishmentID: p.ID,
		PlayerID:     p.PlayerID,
		NoteID:       n.ID,
		IssuerName:   n.IssuerName,
		Timestamp:    now.UnixMilli(),
	})
}

// NewPunishmentExpiredEvent creates a punishment.expired event
func NewPunishmentExpiredEvent(p *domain.PunishmentInstance, expiredAt, now time.Time) Event {
	return newEvent(PunishmentExpired, p.PlayerID, "", domain.PunishmentExpiredPayload{
		PunishmentID: p.ID,
		PlayerID:     p.PlayerID,
		ExpiredAt:    expiredAt.UnixMilli(),
		Timestamp:    now.UnixMilli(),
	})
}

// NewStandingChangedEvent creates a standing.changed event for one category
func NewStandingChangedEvent(playerID string, category domain.Category, previous, current domain.StatusTier, points int, now time.Time) Event {
	return newEvent(StandingChanged, playerID, "", domain.StandingChangedPayload{
		PlayerID:       playerID,
		Category:       string(category),
		PreviousStatus: string(previous),
		Status:         string(current),
		Points:         points,
		Escalated:      current.Rank() > previous.Rank(),
		Timestamp:      now.UnixMilli(),
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services.
// Implementations never block the caller on delivery failures.
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously; every handler runs even when an earlier one fails.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errors.Join(errs...))
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
