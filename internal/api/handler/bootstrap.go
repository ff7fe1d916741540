package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/footscout/footscout-data/internal/api/respond"
	"github.com/footscout/footscout-data/internal/cache"
)

// GetSearchIndex returns the club and player name index for one league.
// The JSON is aggregated in Postgres and passed through untouched, so the
// handler never materializes the rows.
// @Summary Get search index
// @Description Returns every club and player name in a league, used for frontend search and autofill.
// @Tags bootstrap
// @Produce json
// @Param id path int true "League ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /search/league/{id}/index [get]
func (h *Handler) GetSearchIndex(w http.ResponseWriter, r *http.Request) {
	leagueID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "League id must be an integer")
		return
	}

	cacheKey := fmt.Sprintf("search:%d", leagueID)
	ttl := cache.TTLEntityInfo

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var raw []byte
	err = h.pool.QueryRow(r.Context(), `
		SELECT jsonb_build_object(
			'clubs', COALESCE((
				SELECT jsonb_agg(jsonb_build_object('id', c.id, 'name', c.name) ORDER BY c.name)
				FROM clubs c WHERE c.league_id = $1), '[]'::jsonb),
			'players', COALESCE((
				SELECT jsonb_agg(DISTINCT jsonb_build_object('ref', p.player_ref_id, 'name', p.name))
				FROM players p
				JOIN clubs c ON c.id = p.club_id
				WHERE c.league_id = $1), '[]'::jsonb)
		)`, leagueID).Scan(&raw)
	if err != nil || raw == nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No entities found for league")
		return
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}
