package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/footscout/footscout-data/internal/api/respond"
	"github.com/footscout/footscout-data/internal/cache"
	"github.com/footscout/footscout-data/internal/store"
)

// GetSeasonComparisons returns season-over-season deltas for one player,
// oldest pair first.
// @Summary Player season comparisons
// @Tags analytics
// @Produce json
// @Param refId path string true "Player reference ID"
// @Success 200 {array} model.PlayerSeasonComparison
// @Router /player/{refId}/season-comparisons [get]
func (h *Handler) GetSeasonComparisons(w http.ResponseWriter, r *http.Request) {
	refID := chi.URLParam(r, "refId")
	h.serveCached(w, r, "comparisons:"+refID, cache.TTLDerived, func() (interface{}, error) {
		return h.engine.CompareSeasons(r.Context(), refID)
	})
}

// GetPlayerGoalkeeping returns a player's linked keeper rows.
// @Summary Player goalkeeping rows
// @Tags analytics
// @Produce json
// @Param refId path string true "Player reference ID"
// @Success 200 {array} model.Goalkeeping
// @Router /player/{refId}/goalkeeping [get]
func (h *Handler) GetPlayerGoalkeeping(w http.ResponseWriter, r *http.Request) {
	refID := chi.URLParam(r, "refId")
	h.serveCached(w, r, "goalkeeping:"+refID, cache.TTLCurrentSeason, func() (interface{}, error) {
		return store.ListGoalkeepingByRef(r.Context(), h.pool, refID)
	})
}

// GetPlayerShooting returns a player's linked shooting rows.
// @Summary Player shooting rows
// @Tags analytics
// @Produce json
// @Param refId path string true "Player reference ID"
// @Success 200 {array} model.Shooting
// @Router /player/{refId}/shooting [get]
func (h *Handler) GetPlayerShooting(w http.ResponseWriter, r *http.Request) {
	refID := chi.URLParam(r, "refId")
	h.serveCached(w, r, "shooting:"+refID, cache.TTLCurrentSeason, func() (interface{}, error) {
		return store.ListShootingByRef(r.Context(), h.pool, refID)
	})
}

// GetClubTrends returns a club's per-season aggregate trend, most recent
// season first, at most ?seasons=N entries (default 5).
// @Summary Club multi-season trend
// @Tags analytics
// @Produce json
// @Param id path int true "Club ID"
// @Param seasons query int false "Maximum trend entries" default(5)
// @Success 200 {array} model.ClubTrend
// @Failure 400 {object} respond.ErrorResponse
// @Router /club/{id}/trends [get]
func (h *Handler) GetClubTrends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	seasons := 5
	if s := r.URL.Query().Get("seasons"); s != "" {
		seasons, err = strconv.Atoi(s)
		if err != nil || seasons < 1 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASONS", "seasons must be a positive integer")
			return
		}
	}

	h.serveCached(w, r, fmt.Sprintf("trends:%d:%d", id, seasons), cache.TTLDerived, func() (interface{}, error) {
		return h.engine.ClubTrend(r.Context(), id, seasons)
	})
}
