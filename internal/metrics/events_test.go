package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/event"
)

func TestEventMetricsCollector_HandleEvent(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	now := time.Now()

	sev := domain.SeverityLow
	p := &domain.PunishmentInstance{ID: "p1", PlayerID: "u1", TypeOrdinal: 9, Severity: &sev, OffenseTier: domain.OffenseFirst}

	appliedBefore := testutil.ToFloat64(PunishmentsApplied.WithLabelValues("gameplay"))
	pardonBefore := testutil.ToFloat64(Modifications.WithLabelValues(string(domain.ModPardon)))
	escalatedBefore := testutil.ToFloat64(StandingTierChanges.WithLabelValues("social", DirectionUp))

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewPunishmentAppliedEvent(p, domain.CategoryGameplay, now)))
	require.NoError(t, bus.Publish(ctx, event.NewPunishmentModifiedEvent(p, domain.Modification{ID: "m", Type: domain.ModPardon}, domain.EffectiveState{}, now)))
	require.NoError(t, bus.Publish(ctx, event.NewStandingChangedEvent("u1", domain.CategorySocial, domain.StatusLow, domain.StatusMedium, 4, now)))

	assert.Equal(t, appliedBefore+1, testutil.ToFloat64(PunishmentsApplied.WithLabelValues("gameplay")))
	assert.Equal(t, pardonBefore+1, testutil.ToFloat64(Modifications.WithLabelValues(string(domain.ModPardon))))
	assert.Equal(t, escalatedBefore+1, testutil.ToFloat64(StandingTierChanges.WithLabelValues("social", DirectionUp)))
}

func TestEventMetricsCollector_UndecodablePayloadIsIgnored(t *testing.T) {
	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.PunishmentApplied,
		Payload: "not a payload",
	})
	assert.NoError(t, err)
}

func TestRecordDefects(t *testing.T) {
	before := testutil.ToFloat64(DataDefects.WithLabelValues(string(domain.DefectMissingIssuedAt)))
	RecordDefects([]domain.Defect{{Kind: domain.DefectMissingIssuedAt}, {Kind: domain.DefectMissingIssuedAt}})
	assert.Equal(t, before+2, testutil.ToFloat64(DataDefects.WithLabelValues(string(domain.DefectMissingIssuedAt))))
}
