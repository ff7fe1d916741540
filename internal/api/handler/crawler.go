package handler

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/footscout/footscout-data/internal/api/respond"
	"github.com/footscout/footscout-data/internal/config"
	"github.com/footscout/footscout-data/internal/model"
	"github.com/footscout/footscout-data/internal/reconcile"
	"github.com/footscout/footscout-data/internal/scrape"
)

// RunCrawlJob probes every known season URL of a registered league and
// reports per-URL reachability. A timed-out season shows up as one failed
// entry; the job itself always answers 200 with the full list.
// @Summary Run a league crawl job
// @Tags crawl
// @Produce json
// @Param league path string true "League ID" Enums(premier-league, romania-liga1)
// @Success 200 {array} model.URLInformation
// @Failure 404 {object} respond.ErrorResponse
// @Router /crawljobs/{league} [get]
func (h *Handler) RunCrawlJob(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "league")
	def, ok := config.LeagueRegistry[leagueID]
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "UNKNOWN_LEAGUE", "No crawl job for league "+leagueID)
		return
	}

	start := time.Now()
	results := h.orch.CrawlLeague(r.Context(), def)
	h.logger.Info("Crawl job finished",
		"league", leagueID, "urls", len(results),
		"duration", time.Since(start).Round(time.Millisecond))

	respond.WriteJSONObject(w, http.StatusOK, results)
}

var errMissingParams = errors.New("url and id query parameters are required")

// crawlTeamPage aggregates and reconciles one team page for the simple
// crawler endpoints.
func (h *Handler) crawlTeamPage(r *http.Request) (*reconcile.ReconciledTeamData, error) {
	url := r.URL.Query().Get("url")
	teamID := r.URL.Query().Get("id")
	if url == "" || teamID == "" {
		return nil, errMissingParams
	}
	season := r.URL.Query().Get("season")
	if season == "" {
		season = config.DefaultSeason
	}

	bundle, err := h.agg.Aggregate(r.Context(), url, teamID, season)
	if err != nil {
		return nil, err
	}
	return reconcile.Merge(bundle), nil
}

// GetAllTeamData extracts every table from one team page and returns the
// reconciled bundle.
// @Summary Crawl one team page
// @Tags crawl
// @Produce json
// @Param url query string true "Team page URL"
// @Param id query string true "Team identifier"
// @Param season query string false "Season token (defaults to current)"
// @Success 200 {object} reconcile.ReconciledTeamData
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /simplecrawler/all-data [get]
func (h *Handler) GetAllTeamData(w http.ResponseWriter, r *http.Request) {
	merged, err := h.crawlTeamPage(r)
	if err != nil {
		writeCrawlError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, merged)
}

// GetSquadStandard extracts a squad-aggregate table with a caller-supplied
// selector.
// @Summary Extract squad-standard table
// @Tags crawl
// @Produce json
// @Param url query string true "Page URL"
// @Param selector query string true "CSS selector of the squad table"
// @Success 200 {array} model.SquadStandard
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /simplecrawler/squad-standard [get]
func (h *Handler) GetSquadStandard(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	selector := r.URL.Query().Get("selector")
	if url == "" || selector == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PARAMS", "url and selector query parameters are required")
		return
	}
	season := r.URL.Query().Get("season")
	if season == "" {
		season = config.DefaultSeason
	}

	html, _, err := h.agg.Client().FetchPage(r.Context(), url)
	if err != nil {
		writeCrawlError(w, err)
		return
	}
	rows, err := scrape.ExtractSquadStandard(html, selector, season)
	if err != nil {
		writeCrawlError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, rows)
}

// ImportTeamData crawls one team page, reconciles it, and stores the
// bundle in a single transaction.
// @Summary Crawl and import one team page
// @Tags crawl
// @Produce json
// @Param url query string true "Team page URL"
// @Param id query string true "Team identifier"
// @Param club query string true "Club name"
// @Param league query string true "League name"
// @Param nation query string false "Nation"
// @Param season query string false "Season token (defaults to current)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /simplecrawler/import [post]
func (h *Handler) ImportTeamData(w http.ResponseWriter, r *http.Request) {
	club := r.URL.Query().Get("club")
	league := r.URL.Query().Get("league")
	if club == "" || league == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PARAMS", "club and league query parameters are required")
		return
	}
	season := r.URL.Query().Get("season")
	if season == "" {
		season = config.DefaultSeason
	}
	if err := model.ValidateSeason(season); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON", err.Error())
		return
	}

	merged, err := h.crawlTeamPage(r)
	if err != nil {
		writeCrawlError(w, err)
		return
	}

	result, err := h.ingestor.ImportBundle(
		r.Context(), merged, club, league, r.URL.Query().Get("nation"), season)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "IMPORT_FAILED", "Bundle import failed", err.Error())
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"club":     club,
		"league":   league,
		"season":   season,
		"summary":  result.Summary(),
		"warnings": len(merged.Warnings),
	})
}

// DownloadTeamDataJSON returns the reconciled bundle as a JSON attachment.
// @Summary Download team data as JSON
// @Tags crawl
// @Produce json
// @Param url query string true "Team page URL"
// @Param id query string true "Team identifier"
// @Success 200 {file} file
// @Router /simplecrawler/download-json [get]
func (h *Handler) DownloadTeamDataJSON(w http.ResponseWriter, r *http.Request) {
	merged, err := h.crawlTeamPage(r)
	if err != nil {
		writeCrawlError(w, err)
		return
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Response encoding failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", merged.TeamID+"-data.json"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// DownloadTeamDataZip returns a zip of the reconciled bundle plus the raw
// page HTML it was extracted from.
// @Summary Download team data as zip
// @Tags crawl
// @Produce application/zip
// @Param url query string true "Team page URL"
// @Param id query string true "Team identifier"
// @Success 200 {file} file
// @Router /simplecrawler/download-zip [get]
func (h *Handler) DownloadTeamDataZip(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	teamID := r.URL.Query().Get("id")
	if url == "" || teamID == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PARAMS", "url and id query parameters are required")
		return
	}
	season := r.URL.Query().Get("season")
	if season == "" {
		season = config.DefaultSeason
	}

	bundle, err := h.agg.Aggregate(r.Context(), url, teamID, season)
	if err != nil {
		writeCrawlError(w, err)
		return
	}
	merged := reconcile.Merge(bundle)

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Response encoding failed")
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if err := writeZipEntry(zw, teamID+"-data.json", data); err == nil {
		err = writeZipEntry(zw, teamID+"-page.html", []byte(bundle.RawHTML))
	}
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ZIP_FAILED", "Archive creation failed")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", teamID+"-data.zip"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

// writeCrawlError distinguishes caller mistakes (bad params, selector
// matched nothing) from upstream failures.
func writeCrawlError(w http.ResponseWriter, err error) {
	var perr *scrape.ParseError
	if errors.As(err, &perr) {
		respond.WriteErrorDetail(w, http.StatusUnprocessableEntity, "PARSE_FAILED", "Table extraction failed", perr.Error())
		return
	}
	if errors.Is(err, errMissingParams) {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PARAMS", err.Error())
		return
	}
	respond.WriteErrorDetail(w, http.StatusBadGateway, "FETCH_FAILED", "Upstream fetch failed", err.Error())
}
