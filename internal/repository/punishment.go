package repository

import (
	"context"
	"time"

	"github.com/osse101/modstanding/internal/domain"
)

// Punishment defines the interface for punishment data access.
// Modifications and notes are append-only; nothing here deletes or rewrites them.
type Punishment interface {
	GetPunishment(ctx context.Context, id string) (*domain.PunishmentInstance, error)
	ListByPlayer(ctx context.Context, playerID string) ([]domain.PunishmentInstance, error)
	// ListStarted returns started punishments without a pardon, for expiry scheduling
	ListStarted(ctx context.Context) ([]domain.PunishmentInstance, error)

	CreatePunishment(ctx context.Context, p *domain.PunishmentInstance) error
	MarkStarted(ctx context.Context, id string, startedAt time.Time, expiry *time.Time) error
	AppendModification(ctx context.Context, punishmentID string, m domain.Modification) error
	AppendNote(ctx context.Context, punishmentID string, n domain.Note) error
}

// Catalog defines the interface for custom punishment type storage.
// Built-in administrative types are never stored.
type Catalog interface {
	ListTypes(ctx context.Context) ([]domain.PunishmentType, error)
	GetType(ctx context.Context, ordinal int) (*domain.PunishmentType, error)
	UpsertType(ctx context.Context, t domain.PunishmentType) error
}

// StandingTiers remembers the last standing tier announced per player and category
type StandingTiers interface {
	// SwapTier stores tier and returns the previous one; found is false on first sight
	SwapTier(ctx context.Context, playerID string, category domain.Category, tier domain.StatusTier) (previous domain.StatusTier, found bool, err error)
}

// Settings defines the interface for status threshold storage
type Settings interface {
	// GetThresholds returns nil when no thresholds were saved yet
	GetThresholds(ctx context.Context) (*domain.StatusThresholds, error)
	SaveThresholds(ctx context.Context, t domain.StatusThresholds, updatedBy string) error
}
