package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/modstanding/internal/domain"
)

// SettingsRepository stores the single row of status thresholds
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetThresholds returns nil when thresholds were never saved
func (r *SettingsRepository) GetThresholds(ctx context.Context) (*domain.StatusThresholds, error) {
	var t domain.StatusThresholds
	err := r.db.QueryRow(ctx, `
		SELECT social_medium, social_habitual, gameplay_medium, gameplay_habitual
		FROM status_thresholds
		WHERE id = $1`, thresholdsRowID).
		Scan(&t.Social.Medium, &t.Social.Habitual, &t.Gameplay.Medium, &t.Gameplay.Habitual)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetThresholds, err)
	}
	return &t, nil
}

// SaveThresholds replaces the stored thresholds
func (r *SettingsRepository) SaveThresholds(ctx context.Context, t domain.StatusThresholds, updatedBy string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO status_thresholds (id, social_medium, social_habitual, gameplay_medium, gameplay_habitual, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE
		SET social_medium = EXCLUDED.social_medium,
		    social_habitual = EXCLUDED.social_habitual,
		    gameplay_medium = EXCLUDED.gameplay_medium,
		    gameplay_habitual = EXCLUDED.gameplay_habitual,
		    updated_by = EXCLUDED.updated_by,
		    updated_at = NOW()`,
		thresholdsRowID, t.Social.Medium, t.Social.Habitual, t.Gameplay.Medium, t.Gameplay.Habitual, updatedBy)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveThresholds, err)
	}
	return nil
}
