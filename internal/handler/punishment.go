package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/osse101/modstanding/internal/punishment"
)

// PunishmentHandler serves punishment lifecycle endpoints
type PunishmentHandler struct {
	service punishment.Service
	now     func() time.Time
}

// NewPunishmentHandler creates a new punishment handler
func NewPunishmentHandler(service punishment.Service) *PunishmentHandler {
	return &PunishmentHandler{service: service, now: time.Now}
}

// ApplyPunishmentRequest is the body for issuing a punishment
type ApplyPunishmentRequest struct {
	TypeOrdinal       int      `json:"type_ordinal" validate:"gte=0"`
	Severity          string   `json:"severity,omitempty" validate:"severity"`
	OffenseTier       string   `json:"offense_tier,omitempty" validate:"offensetier"`
	DurationMs        *int64   `json:"duration_ms,omitempty" validate:"omitempty,gte=0"`
	Reason            string   `json:"reason" validate:"required,max=1000"`
	IssuerName        string   `json:"issuer_name" validate:"required,max=100"`
	AltBlocking       *bool    `json:"alt_blocking,omitempty"`
	StatWiping        *bool    `json:"stat_wiping,omitempty"`
	EvidenceRefs      []string `json:"evidence_refs,omitempty" validate:"max=20,dive,max=500"`
	AttachedTicketIDs []string `json:"attached_ticket_ids,omitempty" validate:"max=20,dive,max=100"`
}

// StartPunishmentRequest is the optional body for marking execution.
// A missing started_at means now.
type StartPunishmentRequest struct {
	StartedAt string `json:"started_at,omitempty"`
}

// ModifyPunishmentRequest is the body for appending a modification
type ModifyPunishmentRequest struct {
	Type              string `json:"type" validate:"required,modtype"`
	EffectiveDuration *int64 `json:"effective_duration,omitempty" validate:"omitempty,gte=0"`
	Reason            string `json:"reason" validate:"required,max=1000"`
	IssuerName        string `json:"issuer_name" validate:"required,max=100"`
}

// AddNoteRequest is the body for attaching a staff note
type AddNoteRequest struct {
	Text       string `json:"text" validate:"required,max=2000"`
	IssuerName string `json:"issuer_name" validate:"required,max=100"`
}

// PunishmentResponse wraps one derived punishment view
type PunishmentResponse struct {
	Message    string          `json:"message,omitempty"`
	Punishment punishment.View `json:"punishment"`
}

// PunishmentListResponse lists a player's punishments
type PunishmentListResponse struct {
	PlayerID    string            `json:"player_id"`
	Punishments []punishment.View `json:"punishments"`
}

// HandleListPunishments lists every punishment of a player with derived state
// @Summary List player punishments
// @Tags punishments
// @Produce json
// @Param playerID path string true "Player ID"
// @Success 200 {object} PunishmentListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/players/{playerID}/punishments [get]
func (h *PunishmentHandler) HandleListPunishments(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPathParam(r, w, ParamPlayerID)
	if !ok {
		return
	}
	views, err := h.service.ListForPlayer(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, OpListPunishments, err)
		return
	}
	respondJSON(w, http.StatusOK, PunishmentListResponse{PlayerID: playerID, Punishments: views})
}

// HandleApplyPunishment issues a new punishment awaiting execution
// @Summary Apply a punishment
// @Tags punishments
// @Accept json
// @Produce json
// @Param playerID path string true "Player ID"
// @Param request body ApplyPunishmentRequest true "Punishment details"
// @Success 201 {object} PunishmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/players/{playerID}/punishments [post]
func (h *PunishmentHandler) HandleApplyPunishment(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPathParam(r, w, ParamPlayerID)
	if !ok {
		return
	}
	handleAction(w, r, OpApplyPunishment, http.StatusCreated,
		func(ctx context.Context, req ApplyPunishmentRequest) (punishment.View, error) {
			return h.service.Apply(ctx, punishment.ApplyRequest{
				PlayerID:          playerID,
				TypeOrdinal:       req.TypeOrdinal,
				Severity:          req.Severity,
				OffenseTier:       req.OffenseTier,
				DurationMs:        req.DurationMs,
				Reason:            req.Reason,
				IssuerName:        req.IssuerName,
				AltBlocking:       req.AltBlocking,
				StatWiping:        req.StatWiping,
				EvidenceRefs:      req.EvidenceRefs,
				AttachedTicketIDs: req.AttachedTicketIDs,
			})
		},
		func(v punishment.View) interface{} {
			return PunishmentResponse{Message: MsgPunishmentApplied, Punishment: v}
		})
}

// HandleGetPunishment returns one punishment with derived state
// @Summary Get a punishment
// @Tags punishments
// @Produce json
// @Param punishmentID path string true "Punishment ID"
// @Success 200 {object} PunishmentResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/punishments/{punishmentID} [get]
func (h *PunishmentHandler) HandleGetPunishment(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, ParamPunishmentID)
	if !ok {
		return
	}
	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, OpGetPunishment, err)
		return
	}
	respondJSON(w, http.StatusOK, PunishmentResponse{Punishment: view})
}

// HandleStartPunishment marks an awaiting punishment as executed
// @Summary Start a punishment
// @Tags punishments
// @Accept json
// @Produce json
// @Param punishmentID path string true "Punishment ID"
// @Param request body StartPunishmentRequest false "Execution time"
// @Success 200 {object} PunishmentResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/punishments/{punishmentID}/start [post]
func (h *PunishmentHandler) HandleStartPunishment(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, ParamPunishmentID)
	if !ok {
		return
	}

	var req StartPunishmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}

	startedAt := h.now()
	if req.StartedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartedAt)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidStartedAt)
			return
		}
		startedAt = parsed
	}

	view, err := h.service.MarkStarted(r.Context(), id, startedAt)
	if err != nil {
		respondServiceError(w, r, OpStartPunishment, err)
		return
	}
	respondJSON(w, http.StatusOK, PunishmentResponse{Message: MsgPunishmentStarted, Punishment: view})
}

// HandleAddModification appends a modification to a punishment's history
// @Summary Modify a punishment
// @Tags punishments
// @Accept json
// @Produce json
// @Param punishmentID path string true "Punishment ID"
// @Param request body ModifyPunishmentRequest true "Modification"
// @Success 201 {object} PunishmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/punishments/{punishmentID}/modifications [post]
func (h *PunishmentHandler) HandleAddModification(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, ParamPunishmentID)
	if !ok {
		return
	}
	handleAction(w, r, OpModifyPunishment, http.StatusCreated,
		func(ctx context.Context, req ModifyPunishmentRequest) (punishment.View, error) {
			return h.service.Modify(ctx, id, punishment.ModifyRequest{
				Type:              req.Type,
				EffectiveDuration: req.EffectiveDuration,
				Reason:            req.Reason,
				IssuerName:        req.IssuerName,
			})
		},
		func(v punishment.View) interface{} {
			return PunishmentResponse{Message: MsgModificationAdded, Punishment: v}
		})
}

// HandleAddNote attaches a staff note to a punishment
// @Summary Add a note
// @Tags punishments
// @Accept json
// @Produce json
// @Param punishmentID path string true "Punishment ID"
// @Param request body AddNoteRequest true "Note"
// @Success 201 {object} PunishmentResponse
// @Router /api/v1/punishments/{punishmentID}/notes [post]
func (h *PunishmentHandler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, ParamPunishmentID)
	if !ok {
		return
	}
	handleAction(w, r, OpAddNote, http.StatusCreated,
		func(ctx context.Context, req AddNoteRequest) (punishment.View, error) {
			return h.service.AddNote(ctx, id, punishment.NoteRequest{Text: req.Text, IssuerName: req.IssuerName})
		},
		func(v punishment.View) interface{} {
			return PunishmentResponse{Message: MsgNoteAdded, Punishment: v}
		})
}

// HandleEvaluate derives the effective state of a raw punishment record without storing it
// @Summary Evaluate a raw punishment record
// @Tags punishments
// @Accept json
// @Produce json
// @Success 200 {object} punishment.Evaluation
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/punishments/evaluate [post]
func (h *PunishmentHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, ErrMsgBodyTooLarge)
		return
	}
	eval, err := h.service.Evaluate(r.Context(), raw)
	if err != nil {
		respondServiceError(w, r, OpEvaluate, err)
		return
	}
	respondJSON(w, http.StatusOK, eval)
}
