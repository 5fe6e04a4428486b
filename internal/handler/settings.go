package handler

import (
	"context"
	"net/http"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/settings"
)

// SettingsHandler serves admin-configurable settings
type SettingsHandler struct {
	service settings.Service
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(service settings.Service) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// UpdateThresholdsRequest replaces both categories' status thresholds
type UpdateThresholdsRequest struct {
	Social    domain.TierThresholds `json:"social"`
	Gameplay  domain.TierThresholds `json:"gameplay"`
	UpdatedBy string                `json:"updated_by" validate:"required,max=100"`
}

// HandleGetThresholds returns the current status thresholds
// @Summary Get status thresholds
// @Tags admin
// @Produce json
// @Success 200 {object} domain.StatusThresholds
// @Router /api/v1/admin/settings/thresholds [get]
func (h *SettingsHandler) HandleGetThresholds(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetThresholds(r.Context())
	if err != nil {
		respondServiceError(w, r, OpGetThresholds, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// HandleUpdateThresholds replaces the status thresholds
// @Summary Update status thresholds
// @Tags admin
// @Accept json
// @Produce json
// @Param request body UpdateThresholdsRequest true "Thresholds"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/settings/thresholds [put]
func (h *SettingsHandler) HandleUpdateThresholds(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, OpUpdateThresholds, http.StatusOK,
		func(ctx context.Context, req UpdateThresholdsRequest) (domain.StatusThresholds, error) {
			return h.service.UpdateThresholds(ctx, domain.StatusThresholds{
				Social:   req.Social,
				Gameplay: req.Gameplay,
			}, req.UpdatedBy)
		},
		func(t domain.StatusThresholds) interface{} {
			return DataResponse{Message: MsgThresholdsUpdated, Data: t}
		})
}
