package punishment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/validation"
)

// Ingestor turns punishment records from the wire into canonical instances.
// It accepts both the legacy and the current record shapes and is the only
// place that knows about them.
type Ingestor struct {
	validator  validation.SchemaValidator
	schemaPath string
}

// NewIngestor creates an ingestor validating against the punishment schema in schemaDir
func NewIngestor(v validation.SchemaValidator, schemaDir string) *Ingestor {
	return &Ingestor{
		validator:  v,
		schemaPath: filepath.Join(schemaDir, validation.SchemaPunishment),
	}
}

// Normalize validates and decodes a single wire record
func (i *Ingestor) Normalize(raw []byte) (domain.PunishmentInstance, []domain.Defect, error) {
	if err := i.validator.ValidateBytes(raw, i.schemaPath); err != nil {
		return domain.PunishmentInstance{}, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return Decode(raw)
}

// NormalizeBatch validates and decodes a JSON array of wire records
func (i *Ingestor) NormalizeBatch(raw []byte) ([]domain.PunishmentInstance, []domain.Defect, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, fmt.Errorf(ErrMsgDecodeBatch, err))
	}

	out := make([]domain.PunishmentInstance, 0, len(items))
	var defects []domain.Defect
	for idx, item := range items {
		if err := i.validator.ValidateBytes(item, i.schemaPath); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, fmt.Errorf(ErrMsgSchemaRejected, idx, err))
		}
		p, d, err := Decode(item)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, p)
		defects = append(defects, d...)
	}
	return out, defects, nil
}

// Decode maps a wire record to a canonical instance without schema validation.
// Malformed timestamps never fail decoding; they are reported as defects.
func Decode(raw []byte) (domain.PunishmentInstance, []domain.Defect, error) {
	var w wirePunishment
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.PunishmentInstance{}, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, fmt.Errorf(ErrMsgDecodePunishment, err))
	}
	return w.canonical()
}

type wirePunishment struct {
	ID                string             `json:"id"`
	PlayerID          string             `json:"playerId"`
	TypeOrdinal       *int               `json:"typeOrdinal"`
	LegacyType        *int               `json:"type"`
	Severity          *string            `json:"severity"`
	OffenseTier       *string            `json:"offenseTier"`
	IssuerName        *string            `json:"issuerName"`
	Reason            *string            `json:"reason"`
	IssuedAt          wireTime           `json:"issuedAt"`
	StartedAt         wireTime           `json:"startedAt"`
	OriginalExpiry    wireTime           `json:"originalExpiry"`
	LegacyExpires     wireTime           `json:"expires"`
	OriginalDuration  *float64           `json:"originalDuration"`
	LegacyDuration    *float64           `json:"duration"`
	OriginalActive    *bool              `json:"originalActive"`
	LegacyActive      *bool              `json:"active"`
	Modifications     []wireModification `json:"modifications"`
	Notes             []wireNote         `json:"notes"`
	Evidence          []string           `json:"evidence"`
	AttachedTicketIDs []string           `json:"attachedTicketIds"`
	Data              wireData           `json:"data"`
}

type wireModification struct {
	ID                string   `json:"id"`
	Type              string   `json:"type"`
	IssuedAt          wireTime `json:"issuedAt"`
	EffectiveDuration *float64 `json:"effectiveDuration"`
	Reason            *string  `json:"reason"`
	IssuerName        *string  `json:"issuerName"`
}

type wireNote struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	IssuerName *string  `json:"issuerName"`
	IssuedAt   wireTime `json:"issuedAt"`
}

func (w wirePunishment) canonical() (domain.PunishmentInstance, []domain.Defect, error) {
	var defects []domain.Defect
	report := func(field string, wt wireTime, detail string) {
		defects = append(defects, domain.Defect{
			Kind:     domain.DefectInvalidTimestamp,
			RecordID: w.ID,
			Field:    field,
			Detail:   fmt.Sprintf(detail, wt.raw),
		})
	}

	p := domain.PunishmentInstance{
		ID:                w.ID,
		PlayerID:          w.PlayerID,
		IssuerName:        deref(w.IssuerName),
		Reason:            deref(w.Reason),
		OriginalActive:    true,
		EvidenceRefs:      w.Evidence,
		AttachedTicketIDs: w.AttachedTicketIDs,
		Data: domain.PunishmentData{
			AltBlocking: w.Data.altBlocking,
			StatWiping:  w.Data.statWiping,
		},
	}

	switch {
	case w.TypeOrdinal != nil:
		p.TypeOrdinal = *w.TypeOrdinal
	case w.LegacyType != nil:
		p.TypeOrdinal = *w.LegacyType
	default:
		return domain.PunishmentInstance{}, nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNoTypeOrdinal)
	}

	// severity is kept as submitted; aggregation normalizes it
	if w.Severity != nil && strings.TrimSpace(*w.Severity) != "" {
		s := domain.Severity(strings.TrimSpace(*w.Severity))
		p.Severity = &s
	}
	if w.OffenseTier != nil {
		p.OffenseTier = domain.OffenseTier(strings.ToLower(strings.TrimSpace(*w.OffenseTier)))
	}
	if active := firstBool(w.OriginalActive, w.LegacyActive); active != nil {
		p.OriginalActive = *active
	}
	if d := firstFloat(w.OriginalDuration, w.LegacyDuration); d != nil {
		p.OriginalDuration = clampMillis(*d)
	}

	if w.IssuedAt.invalid {
		report(FieldIssuedAt, w.IssuedAt, DefectMsgInvalidTimestamp)
	}
	p.IssuedAt = w.IssuedAt.value

	switch {
	case w.StartedAt.valid():
		started := w.StartedAt.value
		p.StartedAt = &started
	case w.StartedAt.invalid:
		report(FieldStartedAt, w.StartedAt, DefectMsgStartedFallback)
		if !p.IssuedAt.IsZero() {
			started := p.IssuedAt
			p.StartedAt = &started
		}
	}

	expiry := w.OriginalExpiry
	if !expiry.set {
		expiry = w.LegacyExpires
	}
	switch {
	case expiry.valid():
		e := expiry.value
		p.OriginalExpiry = &e
	case expiry.invalid:
		report(FieldOriginalExpiry, expiry, DefectMsgExpiryDerived)
		p.OriginalExpiry = deriveExpiry(p)
	default:
		p.OriginalExpiry = deriveExpiry(p)
	}

	p.Modifications = make([]domain.Modification, 0, len(w.Modifications))
	for idx, wm := range w.Modifications {
		m := domain.Modification{
			ID:         wm.ID,
			Type:       domain.ModificationType(strings.ToUpper(strings.TrimSpace(wm.Type))),
			IssuedAt:   wm.IssuedAt.value,
			Reason:     deref(wm.Reason),
			IssuerName: deref(wm.IssuerName),
		}
		if m.ID == "" {
			m.ID = w.ID + "#" + strconv.Itoa(idx)
		}
		if typ, origin, ok := domain.ResolveModificationType(wm.Type); ok {
			m.Type = typ
			m.Origin = origin
		} else {
			defects = append(defects, domain.Defect{
				Kind:     domain.DefectInvalidModification,
				RecordID: m.ID,
				Field:    FieldType,
				Detail:   fmt.Sprintf(DefectMsgUnknownModType, wm.Type),
			})
		}
		if wm.IssuedAt.invalid {
			defects = append(defects, domain.Defect{
				Kind:     domain.DefectInvalidTimestamp,
				RecordID: m.ID,
				Field:    FieldIssuedAt,
				Detail:   fmt.Sprintf(DefectMsgInvalidTimestamp, wm.IssuedAt.raw),
			})
		}
		if wm.EffectiveDuration != nil {
			ms := clampMillis(*wm.EffectiveDuration)
			m.EffectiveDuration = &ms
		}
		p.Modifications = append(p.Modifications, m)
	}

	for idx, wn := range w.Notes {
		n := domain.Note{
			ID:         wn.ID,
			Text:       wn.Text,
			IssuerName: deref(wn.IssuerName),
			IssuedAt:   wn.IssuedAt.value,
		}
		if n.ID == "" {
			n.ID = w.ID + "/note#" + strconv.Itoa(idx)
		}
		p.Notes = append(p.Notes, n)
	}

	return p, defects, nil
}

// clampMillis converts a wire millisecond count, saturating at the int64 range
func clampMillis(f float64) int64 {
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// deriveExpiry computes startedAt + duration for started, non-permanent records
func deriveExpiry(p domain.PunishmentInstance) *time.Time {
	if p.StartedAt == nil || p.OriginalDuration <= 0 {
		return nil
	}
	e := domain.ExpiryAfter(*p.StartedAt, p.OriginalDuration)
	return &e
}

// wireTime accepts RFC3339 strings, epoch milliseconds (number or numeric string) and null.
// Unparsable values decode successfully with invalid set.
type wireTime struct {
	set     bool
	invalid bool
	value   time.Time
	raw     string
}

func (t wireTime) valid() bool {
	return t.set && !t.invalid
}

var wireTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05",
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		return nil
	}
	t.set = true
	t.raw = s

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			t.invalid = true
			return nil
		}
		t.raw = str
		s = strings.TrimSpace(str)
		for _, layout := range wireTimeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.value = parsed.UTC()
				return nil
			}
		}
	}

	ms, err := strconv.ParseFloat(s, 64)
	if err != nil || ms <= 0 {
		t.invalid = true
		return nil
	}
	t.value = time.UnixMilli(int64(ms)).UTC()
	return nil
}

// wireData accepts {"altBlocking": true} or the legacy entry list [["altBlocking", true]]
type wireData struct {
	altBlocking *bool
	statWiping  *bool
}

func (d *wireData) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return err
		}
		for k, v := range fields {
			d.apply(k, v)
		}
	case '[':
		var entries [][]json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return err
		}
		for _, entry := range entries {
			if len(entry) != 2 {
				continue
			}
			var key string
			if err := json.Unmarshal(entry[0], &key); err != nil {
				continue
			}
			d.apply(key, entry[1])
		}
	default:
		return errors.New(ErrMsgUnsupportedData)
	}
	return nil
}

func (d *wireData) apply(key string, raw json.RawMessage) {
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	normalized := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(key))
	switch normalized {
	case "altblocking", "altblock":
		d.altBlocking = &v
	case "statwiping", "statwipe", "wiping":
		d.statWiping = &v
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstBool(vals ...*bool) *bool {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstFloat(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
