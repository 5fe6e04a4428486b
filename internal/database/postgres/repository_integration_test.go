package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/modstanding/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// TestRepositories_Integration shares one container across the repository suites
func TestRepositories_Integration(t *testing.T) {
	pool := setupTestDB(t)

	t.Run("punishments", func(t *testing.T) { testPunishmentRepository(t, NewPunishmentRepository(pool)) })
	t.Run("catalog", func(t *testing.T) { testCatalogRepository(t, NewCatalogRepository(pool)) })
	t.Run("settings", func(t *testing.T) { testSettingsRepository(t, NewSettingsRepository(pool)) })
	t.Run("standing tiers", func(t *testing.T) { testStandingRepository(t, NewStandingRepository(pool)) })
}

func testPunishmentRepository(t *testing.T, repo *PunishmentRepository) {
	ctx := context.Background()
	issued := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	sev := domain.SeverityRegular

	p := &domain.PunishmentInstance{
		ID:                "p-1",
		PlayerID:          "player-1",
		TypeOrdinal:       6,
		Severity:          &sev,
		OffenseTier:       domain.OffenseFirst,
		IssuerName:        "mod-alice",
		Reason:            "spam",
		IssuedAt:          issued,
		OriginalDuration:  (24 * time.Hour).Milliseconds(),
		OriginalActive:    true,
		EvidenceRefs:      []string{"log-42"},
		AttachedTicketIDs: []string{"T-9"},
		Data:              domain.PunishmentData{AltBlocking: ptr(true)},
	}
	require.NoError(t, repo.CreatePunishment(ctx, p))

	got, err := repo.GetPunishment(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "player-1", got.PlayerID)
	require.NotNil(t, got.Severity)
	assert.Equal(t, domain.SeverityRegular, *got.Severity)
	assert.True(t, got.IssuedAt.Equal(issued))
	assert.Nil(t, got.StartedAt)
	assert.Equal(t, []string{"log-42"}, got.EvidenceRefs)
	require.NotNil(t, got.Data.AltBlocking)
	assert.True(t, *got.Data.AltBlocking)
	assert.Empty(t, got.Modifications)

	// start once
	started := issued.Add(time.Minute)
	expiry := started.Add(24 * time.Hour)
	require.NoError(t, repo.MarkStarted(ctx, "p-1", started, &expiry))
	assert.ErrorIs(t, repo.MarkStarted(ctx, "p-1", started, &expiry), domain.ErrAlreadyStarted)
	assert.ErrorIs(t, repo.MarkStarted(ctx, "missing", started, &expiry), domain.ErrPunishmentNotFound)

	// append-only children, including an undated modification
	require.NoError(t, repo.AppendModification(ctx, "p-1", domain.Modification{
		ID: "m-1", Type: domain.ModDurationChange, Origin: domain.OriginAppeal,
		IssuedAt: issued.Add(time.Hour), EffectiveDuration: ptr(int64(0)), Reason: "appeal",
	}))
	require.NoError(t, repo.AppendModification(ctx, "p-1", domain.Modification{ID: "m-2", Type: domain.ModAltBlockOff}))
	require.NoError(t, repo.AppendNote(ctx, "p-1", domain.Note{ID: "n-1", Text: "called out in chat", IssuerName: "mod-bob", IssuedAt: issued}))
	assert.ErrorIs(t, repo.AppendModification(ctx, "missing", domain.Modification{ID: "m-3", Type: domain.ModPardon}), domain.ErrPunishmentNotFound)

	got, err = repo.GetPunishment(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, got.StartedAt)
	assert.True(t, got.StartedAt.Equal(started))
	require.Len(t, got.Modifications, 2)
	assert.Equal(t, domain.OriginAppeal, got.Modifications[0].Origin)
	require.NotNil(t, got.Modifications[0].EffectiveDuration)
	assert.Equal(t, int64(0), *got.Modifications[0].EffectiveDuration)
	assert.True(t, got.Modifications[1].IssuedAt.IsZero())
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "called out in chat", got.Notes[0].Text)

	// a second, pardoned punishment is excluded from ListStarted
	require.NoError(t, repo.CreatePunishment(ctx, &domain.PunishmentInstance{
		ID: "p-2", PlayerID: "player-1", TypeOrdinal: domain.OrdinalManualBan, OffenseTier: domain.OffenseFirst,
		IssuedAt: issued.Add(2 * time.Hour), StartedAt: ptr(issued.Add(2 * time.Hour)), OriginalActive: true,
		Modifications: []domain.Modification{{ID: "m-4", Type: domain.ModPardon, IssuedAt: issued.Add(3 * time.Hour)}},
	}))

	assert.ErrorIs(t, repo.AppendModification(ctx, "p-2", domain.Modification{ID: "m-5", Type: domain.ModPardon}), domain.ErrAlreadyPardoned)

	list, err := repo.ListByPlayer(ctx, "player-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p-2", list[0].ID, "newest first")
	require.Len(t, list[0].Modifications, 1)
	require.Len(t, list[1].Modifications, 2)

	startedList, err := repo.ListStarted(ctx)
	require.NoError(t, err)
	require.Len(t, startedList, 1)
	assert.Equal(t, "p-1", startedList[0].ID)

	_, err = repo.GetPunishment(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPunishmentNotFound)

	empty, err := repo.ListByPlayer(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testCatalogRepository(t *testing.T, repo *CatalogRepository) {
	ctx := context.Background()

	_, err := repo.GetType(ctx, 6)
	assert.ErrorIs(t, err, domain.ErrPunishmentTypeNotFound)

	day := domain.DurationSpec{Value: 1, Unit: domain.UnitDays}
	pt := domain.PunishmentType{
		Ordinal:         9,
		Name:            "Cheating",
		Category:        domain.CategoryGameplay,
		SingleSeverity:  true,
		SinglePoints:    4,
		SingleDurations: domain.TierDurations{domain.OffenseFirst: day, domain.OffenseMedium: day, domain.OffenseHabitual: day},
		CanAltBlock:     true,
	}
	require.NoError(t, repo.UpsertType(ctx, pt))

	pt.Name = "Cheating (client mods)"
	require.NoError(t, repo.UpsertType(ctx, pt))

	got, err := repo.GetType(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, pt, *got)

	list, err := repo.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	pt.Ordinal = domain.OrdinalKick
	assert.Error(t, repo.UpsertType(ctx, pt), "reserved ordinals are rejected by the table")
}

func testSettingsRepository(t *testing.T, repo *SettingsRepository) {
	ctx := context.Background()

	got, err := repo.GetThresholds(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := domain.StatusThresholds{
		Social:   domain.TierThresholds{Medium: 3, Habitual: 7},
		Gameplay: domain.TierThresholds{Medium: 5, Habitual: 9},
	}
	require.NoError(t, repo.SaveThresholds(ctx, want, "admin"))
	want.Social.Habitual = 8
	require.NoError(t, repo.SaveThresholds(ctx, want, "admin"))

	got, err = repo.GetThresholds(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func testStandingRepository(t *testing.T, repo *StandingRepository) {
	ctx := context.Background()

	_, found, err := repo.SwapTier(ctx, "player-1", domain.CategorySocial, domain.StatusMedium)
	require.NoError(t, err)
	assert.False(t, found)

	previous, found, err := repo.SwapTier(ctx, "player-1", domain.CategorySocial, domain.StatusHabitual)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.StatusMedium, previous)

	previous, found, err = repo.SwapTier(ctx, "player-1", domain.CategorySocial, domain.StatusHabitual)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.StatusHabitual, previous, "unchanged tier")

	_, found, err = repo.SwapTier(ctx, "player-1", domain.CategoryGameplay, domain.StatusLow)
	require.NoError(t, err)
	assert.False(t, found, "categories are tracked separately")

	// concurrent swaps to the same tier report the change exactly once
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prev, ok, err := repo.SwapTier(ctx, "player-2", domain.CategorySocial, domain.StatusMedium)
			if err != nil {
				t.Errorf("swap failed: %v", err)
				return
			}
			if !ok || prev != domain.StatusMedium {
				mu.Lock()
				changes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, changes)
}
