package punishment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/osse101/modstanding/internal/concurrency"
	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/event"
	"github.com/osse101/modstanding/internal/logger"
	"github.com/osse101/modstanding/internal/metrics"
	"github.com/osse101/modstanding/internal/repository"
)

// CatalogReader provides punishment type configuration
type CatalogReader interface {
	Catalog(ctx context.Context) (domain.Catalog, error)
	Get(ctx context.Context, ordinal int) (*domain.PunishmentType, error)
}

// StandingReader resolves the repeat-offense tier a new punishment should use
type StandingReader interface {
	OffenseTierFor(ctx context.Context, playerID string, category domain.Category) (domain.OffenseTier, error)
}

// ApplyRequest describes a new punishment issued by staff
type ApplyRequest struct {
	PlayerID          string
	TypeOrdinal       int
	Severity          string
	OffenseTier       string // empty derives the tier from the player's standing
	DurationMs        *int64 // staff-chosen duration for manual types; 0 is permanent
	Reason            string
	IssuerName        string
	AltBlocking       *bool
	StatWiping        *bool
	EvidenceRefs      []string
	AttachedTicketIDs []string
}

// ModifyRequest describes a modification appended to a punishment
type ModifyRequest struct {
	Type              string // canonical type or a known alias
	EffectiveDuration *int64
	Reason            string
	IssuerName        string
}

// NoteRequest describes a staff note
type NoteRequest struct {
	Text       string
	IssuerName string
}

// Evaluation is the derived view of a record that was never persisted
type Evaluation struct {
	View    View            `json:"view"`
	Defects []domain.Defect `json:"defects,omitempty"`
}

// Service defines punishment lifecycle operations.
// Every read re-derives effective state from the stored history.
type Service interface {
	ListForPlayer(ctx context.Context, playerID string) ([]View, error)
	Get(ctx context.Context, id string) (View, error)
	Apply(ctx context.Context, req ApplyRequest) (View, error)
	MarkStarted(ctx context.Context, id string, startedAt time.Time) (View, error)
	Modify(ctx context.Context, id string, req ModifyRequest) (View, error)
	AddNote(ctx context.Context, id string, req NoteRequest) (View, error)
	Evaluate(ctx context.Context, raw []byte) (Evaluation, error)
}

type service struct {
	repo      repository.Punishment
	catalog   CatalogReader
	standing  StandingReader
	publisher event.Publisher
	ingestor  *Ingestor
	locks     *concurrency.LockManager
	now       func() time.Time
}

// NewService creates a new punishment service.
// standing and publisher may be nil.
func NewService(
	repo repository.Punishment,
	catalog CatalogReader,
	standing StandingReader,
	publisher event.Publisher,
	ingestor *Ingestor,
) Service {
	return &service{
		repo:      repo,
		catalog:   catalog,
		standing:  standing,
		publisher: publisher,
		ingestor:  ingestor,
		locks:     concurrency.NewLockManager(),
		now:       time.Now,
	}
}

// ListForPlayer returns every punishment of a player with its derived state
func (s *service) ListForPlayer(ctx context.Context, playerID string) ([]View, error) {
	records, err := s.repo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListPunishments, playerID, err)
	}
	catalog, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]View, 0, len(records))
	for _, p := range records {
		view := BuildView(p, catalog, now)
		s.reportDefects(ctx, view.Effective.Defects)
		views = append(views, view)
	}
	return views, nil
}

// Get returns one punishment with its derived state
func (s *service) Get(ctx context.Context, id string) (View, error) {
	p, err := s.repo.GetPunishment(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf(ErrMsgGetPunishment, id, err)
	}
	return s.view(ctx, *p)
}

// Apply issues a new punishment. It is persisted awaiting execution.
func (s *service) Apply(ctx context.Context, req ApplyRequest) (View, error) {
	log := logger.FromContext(ctx)

	t, err := s.catalog.Get(ctx, req.TypeOrdinal)
	if err != nil {
		return View{}, fmt.Errorf(ErrMsgGetType, req.TypeOrdinal, err)
	}
	caps := t.Capabilities()

	if err := validateReason(req.Reason, caps.NeedsReason); err != nil {
		return View{}, err
	}
	if req.AltBlocking != nil && *req.AltBlocking && !caps.AllowsAltBlock {
		return View{}, fmt.Errorf("%w: %s", domain.ErrCapabilityNotAllowed, domain.ModAltBlockOn)
	}
	if req.StatWiping != nil && *req.StatWiping && !caps.AllowsStatWipe {
		return View{}, fmt.Errorf("%w: %s", domain.ErrCapabilityNotAllowed, domain.ModStatWipeOn)
	}

	var severity *domain.Severity
	if caps.NeedsSeverity {
		if strings.TrimSpace(req.Severity) == "" {
			return View{}, fmt.Errorf("%w: %s", domain.ErrInvalidSeverity, ErrMsgSeverityRequired)
		}
		sev, ok := domain.NormalizeSeverity(req.Severity)
		if !ok {
			return View{}, fmt.Errorf("%w: "+ErrMsgSeverityUnknown, domain.ErrInvalidSeverity, req.Severity)
		}
		severity = &sev
	}

	tier, err := s.resolveOffenseTier(ctx, req, *t)
	if err != nil {
		return View{}, err
	}

	durationMs, err := originalDuration(*t, caps, severity, tier, req.DurationMs)
	if err != nil {
		return View{}, err
	}

	now := s.now().UTC()
	p := &domain.PunishmentInstance{
		ID:                uuid.NewString(),
		PlayerID:          req.PlayerID,
		TypeOrdinal:       t.Ordinal,
		Severity:          severity,
		OffenseTier:       tier,
		IssuerName:        req.IssuerName,
		Reason:            strings.TrimSpace(req.Reason),
		IssuedAt:          now,
		OriginalDuration:  durationMs,
		OriginalActive:    !caps.Immediate,
		EvidenceRefs:      req.EvidenceRefs,
		AttachedTicketIDs: req.AttachedTicketIDs,
		Data: domain.PunishmentData{
			AltBlocking: req.AltBlocking,
			StatWiping:  req.StatWiping,
		},
	}

	if err := s.repo.CreatePunishment(ctx, p); err != nil {
		return View{}, fmt.Errorf(ErrMsgCreatePunishment, err)
	}

	log.Info(LogMsgPunishmentApplied,
		logger.AttrKeyPunishmentID, p.ID,
		logger.AttrKeyPlayerID, p.PlayerID,
		"type_ordinal", p.TypeOrdinal,
		"offense_tier", p.OffenseTier,
		"duration_ms", p.OriginalDuration)
	s.publish(ctx, event.NewPunishmentAppliedEvent(p, t.Category, now))

	return s.Get(ctx, p.ID)
}

// MarkStarted records that the target system executed the punishment and fixes its original expiry
func (s *service) MarkStarted(ctx context.Context, id string, startedAt time.Time) (View, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	p, err := s.repo.GetPunishment(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf(ErrMsgGetPunishment, id, err)
	}
	if p.StartedAt != nil {
		return View{}, fmt.Errorf("%w: %s", domain.ErrAlreadyStarted, id)
	}
	if HasPardon(p.Modifications) {
		return View{}, fmt.Errorf("%w: %s", domain.ErrAlreadyPardoned, id)
	}

	if startedAt.IsZero() {
		startedAt = s.now()
	}
	startedAt = startedAt.UTC()

	var expiry *time.Time
	switch {
	case !p.OriginalActive:
		// one-shot punishments end the moment they are executed
		expiry = &startedAt
	case p.OriginalDuration > 0:
		e := domain.ExpiryAfter(startedAt, p.OriginalDuration)
		expiry = &e
	}

	if err := s.repo.MarkStarted(ctx, id, startedAt, expiry); err != nil {
		return View{}, fmt.Errorf(ErrMsgMarkStarted, err)
	}

	p.StartedAt = &startedAt
	p.OriginalExpiry = expiry
	logger.FromContext(ctx).Info(LogMsgPunishmentStarted, logger.AttrKeyPunishmentID, id, logger.AttrKeyPlayerID, p.PlayerID)
	s.publish(ctx, event.NewPunishmentStartedEvent(p, expiry, s.now()))

	return s.Get(ctx, id)
}

// Modify appends a modification. History is never rewritten.
func (s *service) Modify(ctx context.Context, id string, req ModifyRequest) (View, error) {
	log := logger.FromContext(ctx)

	modType, origin, ok := domain.ResolveModificationType(req.Type)
	if !ok {
		return View{}, fmt.Errorf("%w: "+ErrMsgModTypeUnknown, domain.ErrInvalidModification, req.Type)
	}
	if utf8.RuneCountInString(req.Reason) > domain.MaxReasonLength {
		return View{}, fmt.Errorf("%w: "+ErrMsgReasonTooLong, domain.ErrInvalidInput, domain.MaxReasonLength)
	}

	// the pardon check and the append must not interleave with another modification
	unlock := s.locks.Lock(id)
	defer unlock()

	p, err := s.repo.GetPunishment(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf(ErrMsgGetPunishment, id, err)
	}
	if HasPardon(p.Modifications) {
		if modType == domain.ModPardon {
			log.Warn(LogMsgPardonAfterPardon, logger.AttrKeyPunishmentID, id)
		}
		return View{}, fmt.Errorf("%w: %s", domain.ErrAlreadyPardoned, id)
	}

	var caps domain.Capabilities
	if t, err := s.catalog.Get(ctx, p.TypeOrdinal); err == nil {
		caps = t.Capabilities()
	} else if !errors.Is(err, domain.ErrPunishmentTypeNotFound) {
		return View{}, fmt.Errorf(ErrMsgGetType, p.TypeOrdinal, err)
	}

	if err := checkModification(modType, req.EffectiveDuration, caps); err != nil {
		return View{}, err
	}

	m := domain.Modification{
		ID:         uuid.NewString(),
		Type:       modType,
		Origin:     origin,
		IssuedAt:   s.now().UTC(),
		Reason:     strings.TrimSpace(req.Reason),
		IssuerName: req.IssuerName,
	}
	if modType == domain.ModDurationChange {
		d := *req.EffectiveDuration
		m.EffectiveDuration = &d
	}

	if err := s.repo.AppendModification(ctx, id, m); err != nil {
		return View{}, fmt.Errorf(ErrMsgAppendModification, err)
	}

	view, err := s.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	log.Info(LogMsgPunishmentModified,
		logger.AttrKeyPunishmentID, id,
		"modification_type", m.Type,
		"origin", m.Origin,
		"active", view.CurrentlyActive)
	s.publish(ctx, event.NewPunishmentModifiedEvent(&view.Punishment, m, view.Effective, s.now()))

	return view, nil
}

// AddNote appends a staff note
func (s *service) AddNote(ctx context.Context, id string, req NoteRequest) (View, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return View{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNoteEmpty)
	}
	if utf8.RuneCountInString(text) > domain.MaxNoteLength {
		return View{}, fmt.Errorf("%w: "+ErrMsgNoteTooLong, domain.ErrInvalidInput, domain.MaxNoteLength)
	}

	p, err := s.repo.GetPunishment(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf(ErrMsgGetPunishment, id, err)
	}

	n := domain.Note{
		ID:         uuid.NewString(),
		Text:       text,
		IssuerName: req.IssuerName,
		IssuedAt:   s.now().UTC(),
	}
	if err := s.repo.AppendNote(ctx, id, n); err != nil {
		return View{}, fmt.Errorf(ErrMsgAppendNote, err)
	}

	logger.FromContext(ctx).Info(LogMsgNoteAdded, logger.AttrKeyPunishmentID, id, "note_id", n.ID)
	s.publish(ctx, event.NewPunishmentNoteAddedEvent(p, n, s.now()))

	return s.Get(ctx, id)
}

// Evaluate derives the state of a wire record without persisting it
func (s *service) Evaluate(ctx context.Context, raw []byte) (Evaluation, error) {
	p, defects, err := s.ingestor.Normalize(raw)
	if err != nil {
		return Evaluation{}, err
	}
	catalog, err := s.snapshot(ctx)
	if err != nil {
		return Evaluation{}, err
	}

	view := BuildView(p, catalog, s.now())
	defects = append(defects, view.Effective.Defects...)
	s.reportDefects(ctx, defects)

	return Evaluation{View: view, Defects: defects}, nil
}

func (s *service) view(ctx context.Context, p domain.PunishmentInstance) (View, error) {
	catalog, err := s.snapshot(ctx)
	if err != nil {
		return View{}, err
	}
	view := BuildView(p, catalog, s.now())
	s.reportDefects(ctx, view.Effective.Defects)
	return view, nil
}

func (s *service) snapshot(ctx context.Context) (domain.Catalog, error) {
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCatalog, err)
	}
	return catalog, nil
}

func (s *service) resolveOffenseTier(ctx context.Context, req ApplyRequest, t domain.PunishmentType) (domain.OffenseTier, error) {
	if req.OffenseTier != "" {
		tier := domain.OffenseTier(strings.ToLower(strings.TrimSpace(req.OffenseTier)))
		if !tier.Valid() {
			return "", fmt.Errorf("%w: "+ErrMsgOffenseTierUnknown, domain.ErrInvalidInput, req.OffenseTier)
		}
		return tier, nil
	}
	if t.IsAdministrative() || s.standing == nil {
		return domain.OffenseFirst, nil
	}

	tier, err := s.standing.OffenseTierFor(ctx, req.PlayerID, t.Category)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgStandingUnavailable, logger.AttrKeyPlayerID, req.PlayerID, "error", err)
		return domain.OffenseFirst, nil
	}
	return tier, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, evt)
}

func (s *service) reportDefects(ctx context.Context, defects []domain.Defect) {
	if len(defects) == 0 {
		return
	}
	log := logger.FromContext(ctx)
	for _, d := range defects {
		log.Warn(LogMsgDataDefect, logger.AttrKeyDefectKind, d.Kind, logger.AttrKeyRecordID, d.RecordID, "field", d.Field, "detail", d.Detail)
	}
	metrics.RecordDefects(defects)
}

func validateReason(reason string, required bool) error {
	reason = strings.TrimSpace(reason)
	if required && reason == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgReasonRequired)
	}
	if utf8.RuneCountInString(reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: "+ErrMsgReasonTooLong, domain.ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}

// originalDuration picks the duration an issuance starts with, in milliseconds
func originalDuration(t domain.PunishmentType, caps domain.Capabilities, severity *domain.Severity, tier domain.OffenseTier, requested *int64) (int64, error) {
	switch {
	case caps.Immediate:
		return 0, nil
	case caps.NeedsDuration:
		if requested == nil {
			return 0, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgDurationRequired)
		}
		if *requested < 0 {
			return 0, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgDurationNegative)
		}
		return *requested, nil
	case !caps.Expires:
		return 0, nil
	}

	spec, ok := t.DurationFor(severity, tier)
	if !ok {
		sev := ""
		if severity != nil {
			sev = string(*severity)
		}
		return 0, fmt.Errorf("%w: "+ErrMsgDurationNotTable, domain.ErrInvalidPunishmentType, sev, tier)
	}
	return spec.Milliseconds(), nil
}

// checkModification enforces what a type allows. caps is zero for unknown types,
// which still accept pardons and duration changes.
func checkModification(modType domain.ModificationType, duration *int64, caps domain.Capabilities) error {
	switch modType {
	case domain.ModDurationChange:
		if caps.Immediate {
			return fmt.Errorf("%w: %s", domain.ErrCapabilityNotAllowed, ErrMsgImmediateDuration)
		}
		if duration == nil {
			return fmt.Errorf("%w: %s", domain.ErrInvalidModification, ErrMsgDurationMissing)
		}
		if *duration < 0 {
			return fmt.Errorf("%w: %s", domain.ErrInvalidModification, ErrMsgDurationNegative)
		}
	case domain.ModAltBlockOn, domain.ModAltBlockOff:
		if !caps.AllowsAltBlock {
			return fmt.Errorf("%w: %s", domain.ErrCapabilityNotAllowed, modType)
		}
	case domain.ModStatWipeOn, domain.ModStatWipeOff:
		if !caps.AllowsStatWipe {
			return fmt.Errorf("%w: %s", domain.ErrCapabilityNotAllowed, modType)
		}
	}
	return nil
}
