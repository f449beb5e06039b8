package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"giglog/internal/delivery/http/helpers"
	"giglog/internal/domain"
)

type ImportController struct {
	Logger   *slog.Logger
	CSV      domain.CSVImporter
	Calendar domain.CalendarImporter // nil when no calendar feed is configured
}

func NewImportController(logger *slog.Logger, csv domain.CSVImporter, calendar domain.CalendarImporter) *ImportController {
	return &ImportController{
		Logger:   logger,
		CSV:      csv,
		Calendar: calendar,
	}
}

// ImportCSV godoc
// @Summary Import gigs from a CSV export
// @Description Streams the request body as CSV and imports every row in one batch. Any row error aborts and rolls back the whole import.
// @Tags imports
// @Accept text/csv
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the CSVImportReport"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /import/csv [post]
func (c *ImportController) ImportCSV(w http.ResponseWriter, r *http.Request) {
	report, err := c.CSV.Import(r.Context(), r.Body)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "csv import failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

// SyncCalendar godoc
// @Summary Sync gigs from the calendar feed
// @Description Fetches calendar events in [from, to] (RFC 3339; defaults to one month either side of now), matches each against known venues and artists, and imports the matches. Conflicting events are skipped.
// @Tags imports
// @Produce json
// @Param from query string false "Range start (RFC 3339)"
// @Param to query string false "Range end (RFC 3339)"
// @Success 200 {object} helpers.APIResponse "data contains the CalendarSyncReport"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /import/calendar [post]
func (c *ImportController) SyncCalendar(w http.ResponseWriter, r *http.Request) {
	if c.Calendar == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "no calendar feed configured")
		return
	}
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now.AddDate(0, 1, 0)
	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "from must be RFC 3339")
			return
		}
		from = t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "to must be RFC 3339")
			return
		}
		to = t
	}

	report, err := c.Calendar.Sync(r.Context(), from, to)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "calendar sync failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}
