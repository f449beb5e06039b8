package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"giglog/internal/delivery/http/helpers"
	"giglog/internal/domain"
)

type SearchController struct {
	Logger *slog.Logger
	Search domain.SearchService
	Stats  domain.StatsService
}

func NewSearchController(logger *slog.Logger, search domain.SearchService, stats domain.StatsService) *SearchController {
	return &SearchController{
		Logger: logger,
		Search: search,
		Stats:  stats,
	}
}

// SearchNames godoc
// @Summary Fuzzy search artists, venues and people
// @Description Ranks entity names against the query, best matches first.
// @Tags search
// @Produce json
// @Param q query string true "Query text"
// @Param limit query int false "Maximum hits (default 20)"
// @Success 200 {object} helpers.APIResponse "data contains a list of SearchHit"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /search [get]
func (c *SearchController) SearchNames(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	hits, err := c.Search.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, hits)
}

// Attendance godoc
// @Summary Attendance statistics
// @Description Returns total gigs, gigs per year, and the longest consecutive-month gig streak.
// @Tags stats
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains AttendanceStats"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /stats/attendance [get]
func (c *SearchController) Attendance(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Stats.Attendance(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
