package handler

import (
	"net/http"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/standing"
)

// StandingHandler serves player standing endpoints
type StandingHandler struct {
	service standing.Service
}

// NewStandingHandler creates a new standing handler
func NewStandingHandler(service standing.Service) *StandingHandler {
	return &StandingHandler{service: service}
}

// StandingResponse is a player's aggregated standing
type StandingResponse struct {
	PlayerID string                 `json:"player_id"`
	Standing domain.StatusAggregate `json:"standing"`
}

// OffenseTierResponse is the repeat-offense tier a new punishment in a category would use
type OffenseTierResponse struct {
	PlayerID    string             `json:"player_id"`
	Category    domain.Category    `json:"category"`
	OffenseTier domain.OffenseTier `json:"offense_tier"`
}

// HandleGetStanding returns the social and gameplay status of a player.
// A pending aggregate is still a 200; clients check the pending flag.
// @Summary Get player standing
// @Tags standing
// @Produce json
// @Param playerID path string true "Player ID"
// @Success 200 {object} StandingResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/players/{playerID}/standing [get]
func (h *StandingHandler) HandleGetStanding(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPathParam(r, w, ParamPlayerID)
	if !ok {
		return
	}
	agg, err := h.service.GetStanding(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, OpGetStanding, err)
		return
	}
	respondJSON(w, http.StatusOK, StandingResponse{PlayerID: playerID, Standing: agg})
}

// HandleGetOffenseTier returns the offense tier derived from the player's standing
// @Summary Get offense tier for a category
// @Tags standing
// @Produce json
// @Param playerID path string true "Player ID"
// @Param category query string true "social or gameplay"
// @Success 200 {object} OffenseTierResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/players/{playerID}/offense-tier [get]
func (h *StandingHandler) HandleGetOffenseTier(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetPathParam(r, w, ParamPlayerID)
	if !ok {
		return
	}
	category := domain.Category(GetOptionalQueryParam(r, QueryCategory, ""))
	if category != domain.CategorySocial && category != domain.CategoryGameplay {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCategory)
		return
	}
	tier, err := h.service.OffenseTierFor(r.Context(), playerID, category)
	if err != nil {
		respondServiceError(w, r, OpGetOffenseTier, err)
		return
	}
	respondJSON(w, http.StatusOK, OffenseTierResponse{PlayerID: playerID, Category: category, OffenseTier: tier})
}
