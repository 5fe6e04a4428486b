package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/modstanding/internal/domain"
)

// PunishmentRepository implements repository.Punishment for PostgreSQL
type PunishmentRepository struct {
	db *pgxpool.Pool
}

// NewPunishmentRepository creates a new PunishmentRepository
func NewPunishmentRepository(db *pgxpool.Pool) *PunishmentRepository {
	return &PunishmentRepository{db: db}
}

const punishmentColumns = `
	punishment_id, player_id, type_ordinal, severity, offense_tier, issuer_name, reason,
	issued_at, started_at, original_expiry, original_duration_ms, original_active,
	evidence_refs, attached_ticket_ids, data`

// GetPunishment loads one punishment with its modifications and notes
func (r *PunishmentRepository) GetPunishment(ctx context.Context, id string) (*domain.PunishmentInstance, error) {
	row := r.db.QueryRow(ctx, `SELECT `+punishmentColumns+` FROM punishments WHERE punishment_id = $1`, id)
	p, err := scanPunishment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPunishmentNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPunishment, err)
	}

	list := []domain.PunishmentInstance{*p}
	if err := r.attachChildren(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// ListByPlayer returns the player's punishments, newest first
func (r *PunishmentRepository) ListByPlayer(ctx context.Context, playerID string) ([]domain.PunishmentInstance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+punishmentColumns+`
		FROM punishments
		WHERE player_id = $1
		ORDER BY issued_at DESC, punishment_id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPunishments, err)
	}
	return r.collect(ctx, rows)
}

// ListStarted returns started punishments that have no pardon
func (r *PunishmentRepository) ListStarted(ctx context.Context) ([]domain.PunishmentInstance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+punishmentColumns+`
		FROM punishments p
		WHERE p.started_at IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM punishment_modifications m
			WHERE m.punishment_id = p.punishment_id AND m.mod_type = $1
		  )
		ORDER BY p.started_at`, string(domain.ModPardon))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPunishments, err)
	}
	return r.collect(ctx, rows)
}

// CreatePunishment inserts a punishment together with any modifications and notes it carries
func (r *PunishmentRepository) CreatePunishment(ctx context.Context, p *domain.PunishmentInstance) error {
	data, err := json.Marshal(p.Data)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeData, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO punishments (`+punishmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.PlayerID, p.TypeOrdinal, severityParam(p.Severity), string(p.OffenseTier), p.IssuerName, p.Reason,
		p.IssuedAt, p.StartedAt, p.OriginalExpiry, p.OriginalDuration, p.OriginalActive,
		nonNil(p.EvidenceRefs), nonNil(p.AttachedTicketIDs), data)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreatePunishment, err)
	}

	for _, m := range p.Modifications {
		if err := insertModification(ctx, tx, p.ID, m); err != nil {
			return err
		}
	}
	for _, n := range p.Notes {
		if err := insertNote(ctx, tx, p.ID, n); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// MarkStarted records execution. It only succeeds once per punishment.
func (r *PunishmentRepository) MarkStarted(ctx context.Context, id string, startedAt time.Time, expiry *time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE punishments
		SET started_at = $2, original_expiry = $3
		WHERE punishment_id = $1 AND started_at IS NULL`, id, startedAt, expiry)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkStarted, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM punishments WHERE punishment_id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarkStarted, err)
		}
		if !exists {
			return domain.ErrPunishmentNotFound
		}
		return domain.ErrAlreadyStarted
	}
	return nil
}

// AppendModification inserts a modification. Existing rows are never updated.
func (r *PunishmentRepository) AppendModification(ctx context.Context, punishmentID string, m domain.Modification) error {
	return insertModification(ctx, r.db, punishmentID, m)
}

// AppendNote inserts a note
func (r *PunishmentRepository) AppendNote(ctx context.Context, punishmentID string, n domain.Note) error {
	return insertNote(ctx, r.db, punishmentID, n)
}

func insertModification(ctx context.Context, db execer, punishmentID string, m domain.Modification) error {
	var issuedAt *time.Time
	if !m.IssuedAt.IsZero() {
		issuedAt = &m.IssuedAt
	}
	origin := m.Origin
	if origin == "" {
		origin = domain.OriginManual
	}
	_, err := db.Exec(ctx, `
		INSERT INTO punishment_modifications
			(modification_id, punishment_id, mod_type, origin, issued_at, effective_duration_ms, reason, issuer_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, punishmentID, string(m.Type), string(origin), issuedAt, m.EffectiveDuration, m.Reason, m.IssuerName)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAppendModification, mapConstraint(err))
	}
	return nil
}

func insertNote(ctx context.Context, db execer, punishmentID string, n domain.Note) error {
	_, err := db.Exec(ctx, `
		INSERT INTO punishment_notes (note_id, punishment_id, text, issuer_name, issued_at)
		VALUES ($1, $2, $3, $4, $5)`,
		n.ID, punishmentID, n.Text, n.IssuerName, n.IssuedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAppendNote, mapConstraint(err))
	}
	return nil
}

func (r *PunishmentRepository) collect(ctx context.Context, rows pgx.Rows) ([]domain.PunishmentInstance, error) {
	defer rows.Close()

	var out []domain.PunishmentInstance
	for rows.Next() {
		p, err := scanPunishment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPunishments, err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPunishments, err)
	}

	if err := r.attachChildren(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachChildren loads modifications and notes for all given punishments in two queries
func (r *PunishmentRepository) attachChildren(ctx context.Context, list []domain.PunishmentInstance) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	index := make(map[string]int, len(list))
	for i, p := range list {
		ids[i] = p.ID
		index[p.ID] = i
		list[i].Modifications = []domain.Modification{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT punishment_id, modification_id, mod_type, origin, issued_at, effective_duration_ms, reason, issuer_name
		FROM punishment_modifications
		WHERE punishment_id = ANY($1)
		ORDER BY created_at, modification_id`, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadModifications, err)
	}
	for rows.Next() {
		var (
			pid, modType, origin string
			issuedAt             *time.Time
			m                    domain.Modification
		)
		if err := rows.Scan(&pid, &m.ID, &modType, &origin, &issuedAt, &m.EffectiveDuration, &m.Reason, &m.IssuerName); err != nil {
			rows.Close()
			return fmt.Errorf("%s: %w", ErrMsgFailedToLoadModifications, err)
		}
		m.Type = domain.ModificationType(modType)
		m.Origin = domain.ModificationOrigin(origin)
		if issuedAt != nil {
			m.IssuedAt = issuedAt.UTC()
		}
		i := index[pid]
		list[i].Modifications = append(list[i].Modifications, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadModifications, err)
	}

	rows, err = r.db.Query(ctx, `
		SELECT punishment_id, note_id, text, issuer_name, issued_at
		FROM punishment_notes
		WHERE punishment_id = ANY($1)
		ORDER BY issued_at, note_id`, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadNotes, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			pid string
			n   domain.Note
		)
		if err := rows.Scan(&pid, &n.ID, &n.Text, &n.IssuerName, &n.IssuedAt); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToLoadNotes, err)
		}
		n.IssuedAt = n.IssuedAt.UTC()
		i := index[pid]
		list[i].Notes = append(list[i].Notes, n)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadNotes, err)
	}
	return nil
}

func scanPunishment(row pgx.Row) (*domain.PunishmentInstance, error) {
	var (
		p           domain.PunishmentInstance
		severity    *string
		offenseTier string
		data        []byte
	)
	err := row.Scan(
		&p.ID, &p.PlayerID, &p.TypeOrdinal, &severity, &offenseTier, &p.IssuerName, &p.Reason,
		&p.IssuedAt, &p.StartedAt, &p.OriginalExpiry, &p.OriginalDuration, &p.OriginalActive,
		&p.EvidenceRefs, &p.AttachedTicketIDs, &data)
	if err != nil {
		return nil, err
	}

	if severity != nil {
		s := domain.Severity(*severity)
		p.Severity = &s
	}
	p.OffenseTier = domain.OffenseTier(offenseTier)
	p.IssuedAt = p.IssuedAt.UTC()
	p.StartedAt = utc(p.StartedAt)
	p.OriginalExpiry = utc(p.OriginalExpiry)

	if len(data) > 0 {
		if err := json.Unmarshal(data, &p.Data); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeData, err)
		}
	}
	return &p, nil
}

func severityParam(s *domain.Severity) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
