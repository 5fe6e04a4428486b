package handler

import (
	"net/http"

	"github.com/osse101/modstanding/internal/catalog"
	"github.com/osse101/modstanding/internal/domain"
)

// CatalogHandler serves punishment type configuration
type CatalogHandler struct {
	service catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// PunishmentTypeListResponse lists every configured type
type PunishmentTypeListResponse struct {
	Types []domain.PunishmentType `json:"types"`
}

// HandleListTypes returns built-in and custom punishment types ordered by ordinal
// @Summary List punishment types
// @Tags catalog
// @Produce json
// @Success 200 {object} PunishmentTypeListResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/punishment-types [get]
func (h *CatalogHandler) HandleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, r, OpListTypes, err)
		return
	}
	respondJSON(w, http.StatusOK, PunishmentTypeListResponse{Types: types})
}

// HandleGetType returns one punishment type
// @Summary Get a punishment type
// @Tags catalog
// @Produce json
// @Param ordinal path int true "Type ordinal"
// @Success 200 {object} domain.PunishmentType
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/punishment-types/{ordinal} [get]
func (h *CatalogHandler) HandleGetType(w http.ResponseWriter, r *http.Request) {
	ordinal, ok := GetOrdinalParam(r, w)
	if !ok {
		return
	}
	t, err := h.service.Get(r.Context(), ordinal)
	if err != nil {
		respondServiceError(w, r, OpGetType, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// HandleUpsertType creates or replaces a custom punishment type
// @Summary Create or replace a custom punishment type
// @Tags admin
// @Accept json
// @Produce json
// @Param ordinal path int true "Type ordinal (6 or above)"
// @Param request body domain.PunishmentType true "Type definition"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/punishment-types/{ordinal} [put]
func (h *CatalogHandler) HandleUpsertType(w http.ResponseWriter, r *http.Request) {
	ordinal, ok := GetOrdinalParam(r, w)
	if !ok {
		return
	}

	var t domain.PunishmentType
	if err := DecodeAndValidateRequest(r, w, &t, OpUpsertType); err != nil {
		return
	}
	// the path names the ordinal; a body without one inherits it
	if t.Ordinal == 0 {
		t.Ordinal = ordinal
	}
	if t.Ordinal != ordinal {
		respondError(w, http.StatusBadRequest, ErrMsgOrdinalMismatch)
		return
	}

	saved, err := h.service.Upsert(r.Context(), t)
	if err != nil {
		respondServiceError(w, r, OpUpsertType, err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgTypeSaved, Data: saved})
}
