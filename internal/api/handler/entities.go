package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/footscout/footscout-data/internal/api/respond"
	"github.com/footscout/footscout-data/internal/cache"
	"github.com/footscout/footscout-data/internal/model"
	"github.com/footscout/footscout-data/internal/store"
)

// serveCached runs fetch on a cache miss and answers with ETag/TTL headers.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, fetch func() (interface{}, error)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := fetch()
	if err != nil {
		h.logger.Error("Query failed", "key", key, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Query failed")
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Response encoding failed")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return id, nil
}

// GetLeagues returns all leagues.
// @Summary List leagues
// @Tags entities
// @Produce json
// @Success 200 {array} model.League
// @Router /leagues [get]
func (h *Handler) GetLeagues(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "leagues", cache.TTLEntityInfo, func() (interface{}, error) {
		return store.ListLeagues(r.Context(), h.pool)
	})
}

// GetClubsByLeague returns the clubs of one league.
// @Summary List clubs of a league
// @Tags entities
// @Produce json
// @Param id path int true "League ID"
// @Success 200 {array} model.Club
// @Failure 400 {object} respond.ErrorResponse
// @Router /club/league/{id}/clubs [get]
func (h *Handler) GetClubsByLeague(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	h.serveCached(w, r, fmt.Sprintf("clubs:%d", id), cache.TTLEntityInfo, func() (interface{}, error) {
		return store.ListClubsByLeague(r.Context(), h.pool, id)
	})
}

// GetPlayersByClub returns every season row of a club's players.
// @Summary List a club's players, all seasons
// @Tags entities
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {array} model.Player
// @Failure 400 {object} respond.ErrorResponse
// @Router /player/club/{id}/players [get]
func (h *Handler) GetPlayersByClub(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	h.serveCached(w, r, fmt.Sprintf("players:%d", id), cache.TTLCurrentSeason, func() (interface{}, error) {
		return store.ListPlayersByClub(r.Context(), h.pool, id)
	})
}

// GetCurrentPlayersByClub returns a club's players for its most recent
// persisted season.
// @Summary List a club's current-season players
// @Tags entities
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {array} model.Player
// @Failure 400 {object} respond.ErrorResponse
// @Router /player/club/{id}/players/current [get]
func (h *Handler) GetCurrentPlayersByClub(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	h.serveCached(w, r, fmt.Sprintf("players:current:%d", id), cache.TTLCurrentSeason, func() (interface{}, error) {
		season, err := h.latestSeason(r, id)
		if err != nil {
			return nil, err
		}
		if season == "" {
			return []model.Player{}, nil
		}
		return store.ListPlayersByClubSeason(r.Context(), h.pool, id, season)
	})
}

// latestSeason resolves a club's most recent season by parsed start year,
// not string order.
func (h *Handler) latestSeason(r *http.Request, clubID int) (string, error) {
	rows, err := h.pool.Query(r.Context(), "club_seasons", clubID)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	latest, latestKey := "", -1
	for rows.Next() {
		var season string
		if err := rows.Scan(&season); err != nil {
			return "", err
		}
		key, err := model.SeasonKey(season)
		if err != nil {
			continue
		}
		if key > latestKey {
			latest, latestKey = season, key
		}
	}
	return latest, rows.Err()
}

// GetPlayerDetails returns the biography row for a player.
// @Summary Get player biography
// @Tags entities
// @Produce json
// @Param refId path string true "Player reference ID"
// @Success 200 {object} model.PlayerDetails
// @Failure 404 {object} respond.ErrorResponse
// @Router /player/{refId}/details [get]
func (h *Handler) GetPlayerDetails(w http.ResponseWriter, r *http.Request) {
	refID := chi.URLParam(r, "refId")

	var d model.PlayerDetails
	err := h.pool.QueryRow(r.Context(), "player_details_by_ref", refID).Scan(
		&d.PlayerRefID, &d.FullName, &d.BirthDate, &d.BirthPlace,
		&d.Nationality, &d.Height, &d.Weight, &d.Foot, &d.CurrentClub,
		&d.PhotoURL)
	if err != nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No details for player "+refID)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, d)
}
