package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/modstanding/internal/domain"
)

// CatalogRepository stores custom punishment types as JSONB definitions
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListTypes returns all stored custom types ordered by ordinal
func (r *CatalogRepository) ListTypes(ctx context.Context) ([]domain.PunishmentType, error) {
	rows, err := r.db.Query(ctx, `SELECT ordinal, definition FROM punishment_types ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTypes, err)
	}
	defer rows.Close()

	var out []domain.PunishmentType
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTypes, err)
	}
	return out, nil
}

// GetType returns one stored type or domain.ErrPunishmentTypeNotFound
func (r *CatalogRepository) GetType(ctx context.Context, ordinal int) (*domain.PunishmentType, error) {
	row := r.db.QueryRow(ctx, `SELECT ordinal, definition FROM punishment_types WHERE ordinal = $1`, ordinal)
	t, err := scanType(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPunishmentTypeNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetType, err)
	}
	return t, nil
}

// UpsertType inserts or replaces the type stored under t.Ordinal
func (r *CatalogRepository) UpsertType(ctx context.Context, t domain.PunishmentType) error {
	definition, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeType, err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO punishment_types (ordinal, name, category, definition, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (ordinal) DO UPDATE
		SET name = EXCLUDED.name,
		    category = EXCLUDED.category,
		    definition = EXCLUDED.definition,
		    updated_at = NOW()`,
		t.Ordinal, t.Name, string(t.Category), definition)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertType, err)
	}
	return nil
}

func scanType(row pgx.Row) (*domain.PunishmentType, error) {
	var (
		ordinal    int
		definition []byte
	)
	if err := row.Scan(&ordinal, &definition); err != nil {
		return nil, err
	}
	var t domain.PunishmentType
	if err := json.Unmarshal(definition, &t); err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToDecodeType+": %w", ordinal, err)
	}
	t.Ordinal = ordinal
	return &t, nil
}
