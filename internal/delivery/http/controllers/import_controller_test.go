package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"giglog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCSVImporter struct {
	report   *domain.CSVImportReport
	err      error
	lastBody string
}

func (f *fakeCSVImporter) Import(ctx context.Context, r io.Reader) (*domain.CSVImportReport, error) {
	b, _ := io.ReadAll(r)
	f.lastBody = string(b)
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type fakeCalendarImporter struct {
	report   *domain.CalendarSyncReport
	err      error
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeCalendarImporter) Match(ctx context.Context, event domain.CalendarEvent) (*domain.GigCandidate, error) {
	return nil, nil
}

func (f *fakeCalendarImporter) Sync(ctx context.Context, from, to time.Time) (*domain.CalendarSyncReport, error) {
	f.lastFrom = from
	f.lastTo = to
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func TestImportController_ImportCSV(t *testing.T) {
	tests := []struct {
		name       string
		csv        *fakeCSVImporter
		wantStatus int
	}{
		{
			name:       "success",
			csv:        &fakeCSVImporter{report: &domain.CSVImportReport{Processed: 3}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "row error aborts",
			csv:        &fakeCSVImporter{err: fmt.Errorf("row 2: %w", domain.ErrValidation)},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "conflict",
			csv:        &fakeCSVImporter{err: fmt.Errorf("row 4: %w", domain.ErrConflict)},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewImportController(testLogger, tt.csv, nil)
			body := "Date,Artist / Headliner,Venue\n2024-05-10,Pulp,O2 Academy\n"
			req := httptest.NewRequest(http.MethodPost, "/import/csv", strings.NewReader(body))
			rec := httptest.NewRecorder()

			c.ImportCSV(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, body, tt.csv.lastBody)
			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Data domain.CSVImportReport `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, 3, resp.Data.Processed)
			}
		})
	}
}

func TestImportController_SyncCalendar(t *testing.T) {
	t.Run("explicit range", func(t *testing.T) {
		cal := &fakeCalendarImporter{report: &domain.CalendarSyncReport{Created: 2, Updated: 1, Skipped: 4}}
		c := NewImportController(testLogger, &fakeCSVImporter{}, cal)

		req := httptest.NewRequest(http.MethodPost, "/import/calendar?from=2025-06-01T00:00:00Z&to=2025-07-01T00:00:00Z", nil)
		rec := httptest.NewRecorder()
		c.SyncCalendar(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), cal.lastFrom)
		assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), cal.lastTo)

		var resp struct {
			Data domain.CalendarSyncReport `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Data.Created)
		assert.Equal(t, 1, resp.Data.Updated)
		assert.Equal(t, 4, resp.Data.Skipped)
	})

	t.Run("bad from parameter", func(t *testing.T) {
		c := NewImportController(testLogger, &fakeCSVImporter{}, &fakeCalendarImporter{})
		req := httptest.NewRequest(http.MethodPost, "/import/calendar?from=yesterday", nil)
		rec := httptest.NewRecorder()
		c.SyncCalendar(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no feed configured", func(t *testing.T) {
		c := NewImportController(testLogger, &fakeCSVImporter{}, nil)
		req := httptest.NewRequest(http.MethodPost, "/import/calendar", nil)
		rec := httptest.NewRecorder()
		c.SyncCalendar(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sync failure", func(t *testing.T) {
		cal := &fakeCalendarImporter{err: errors.New("feed unreachable")}
		c := NewImportController(testLogger, &fakeCSVImporter{}, cal)
		req := httptest.NewRequest(http.MethodPost, "/import/calendar", nil)
		rec := httptest.NewRecorder()
		c.SyncCalendar(rec, req)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
