package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/modstanding/internal/domain"
)

// StandingRepository stores the last published standing tier per player and category
type StandingRepository struct {
	db *pgxpool.Pool
}

// NewStandingRepository creates a new StandingRepository
func NewStandingRepository(db *pgxpool.Pool) *StandingRepository {
	return &StandingRepository{db: db}
}

// SwapTier records tier and returns the one it replaced. found is false the first time a
// player and category are seen. Concurrent swaps for the same key are serialized with a
// transaction-scoped advisory lock so each change is reported once.
func (r *StandingRepository) SwapTier(ctx context.Context, playerID string, category domain.Category, tier domain.StatusTier) (domain.StatusTier, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, playerID+"/"+string(category)); err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrMsgFailedToSwapTier, err)
	}

	var previous string
	found := true
	err = tx.QueryRow(ctx, `
		SELECT tier FROM standing_tiers
		WHERE player_id = $1 AND category = $2`, playerID, string(category)).Scan(&previous)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		found = false
	case err != nil:
		return "", false, fmt.Errorf("%s: %w", ErrMsgFailedToSwapTier, err)
	}

	if !found || previous != string(tier) {
		_, err = tx.Exec(ctx, `
			INSERT INTO standing_tiers (player_id, category, tier, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (player_id, category) DO UPDATE
			SET tier = EXCLUDED.tier, updated_at = NOW()`,
			playerID, string(category), string(tier))
		if err != nil {
			return "", false, fmt.Errorf("%s: %w", ErrMsgFailedToSwapTier, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return domain.StatusTier(previous), found, nil
}
