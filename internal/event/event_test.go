package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/modstanding/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event

	bus.Subscribe(PunishmentApplied, func(ctx context.Context, evt Event) error {
		got = append(got, evt)
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: PunishmentApplied, Payload: "x"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].Payload)

	// No subscribers is not an error
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: PunishmentExpired}))
}

func TestMemoryBus_AllHandlersRunOnError(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0

	bus.Subscribe(StandingChanged, func(ctx context.Context, evt Event) error {
		calls++
		return errors.New("first")
	})
	bus.Subscribe(StandingChanged, func(ctx context.Context, evt Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: StandingChanged})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.Equal(t, 2, calls)
}

func TestConstructors_SetPlayerMetadata(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	started := now.Add(-time.Hour)
	expiry := now.Add(time.Hour)
	sev := domain.SeveritySevere
	p := &domain.PunishmentInstance{
		ID:               "p1",
		PlayerID:         "player-9",
		TypeOrdinal:      6,
		Severity:         &sev,
		OffenseTier:      domain.OffenseFirst,
		IssuerName:       "mod",
		StartedAt:        &started,
		OriginalDuration: 7200000,
	}

	tests := []struct {
		name string
		evt  Event
		typ  Type
	}{
		{"applied", NewPunishmentAppliedEvent(p, domain.CategorySocial, now), PunishmentApplied},
		{"started", NewPunishmentStartedEvent(p, &expiry, now), PunishmentStarted},
		{"modified", NewPunishmentModifiedEvent(p, domain.Modification{ID: "m1", Type: domain.ModPardon}, domain.EffectiveState{}, now), PunishmentModified},
		{"note", NewPunishmentNoteAddedEvent(p, domain.Note{ID: "n1"}, now), PunishmentNoteAdded},
		{"expired", NewPunishmentExpiredEvent(p, expiry, now), PunishmentExpired},
		{"standing", NewStandingChangedEvent("player-9", domain.CategorySocial, domain.StatusLow, domain.StatusHabitual, 9, now), StandingChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.evt.Type)
			assert.Equal(t, EventSchemaVersion, tt.evt.Version)
			assert.Equal(t, "player-9", tt.evt.PlayerID())
		})
	}
}

func TestNewPunishmentAppliedEvent_Payload(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sev := domain.SeverityLow
	p := &domain.PunishmentInstance{ID: "p1", PlayerID: "u", TypeOrdinal: 7, Severity: &sev, OffenseTier: domain.OffenseMedium, OriginalDuration: 1000}

	payload, err := DecodePayload[domain.PunishmentAppliedPayload](NewPunishmentAppliedEvent(p, domain.CategoryGameplay, now).Payload)
	require.NoError(t, err)
	assert.Equal(t, "gameplay", payload.Category)
	assert.Equal(t, "low", payload.Severity)
	assert.Equal(t, "medium", payload.OffenseTier)
	assert.Equal(t, int64(1000), payload.DurationMs)
	assert.Equal(t, now.UnixMilli(), payload.Timestamp)
}

func TestNewStandingChangedEvent_Escalation(t *testing.T) {
	now := time.Now()
	up, err := DecodePayload[domain.StandingChangedPayload](
		NewStandingChangedEvent("u", domain.CategorySocial, domain.StatusLow, domain.StatusMedium, 4, now).Payload)
	require.NoError(t, err)
	assert.True(t, up.Escalated)

	down, err := DecodePayload[domain.StandingChangedPayload](
		NewStandingChangedEvent("u", domain.CategorySocial, domain.StatusHabitual, domain.StatusMedium, 5, now).Payload)
	require.NoError(t, err)
	assert.False(t, down.Escalated)
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{"player_id": "abc", "status": "habitual", "points": 11.0}

	payload, err := DecodePayload[domain.StandingChangedPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, "abc", payload.PlayerID)
	assert.Equal(t, "habitual", payload.Status)
	assert.Equal(t, 11, payload.Points)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 0))
}
