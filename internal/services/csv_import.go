package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"giglog/internal/domain"
)

// CSV column headers, case-sensitive. Extra or missing columns never fail the
// import; a row is only skipped when it lacks a date, headliner or venue.
const (
	colDate        = "Date"
	colHeadliner   = "Artist / Headliner"
	colSupportActs = "Support Acts"
	colVenue       = "Venue"
	colCity        = "City"
	colTicketCost  = "Ticket Cost"
	colTicketType  = "Ticket Type"
	colWentWith    = "Went With"
	colSetlistURL  = "Setlist URL"
)

var csvDateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006"}

type csvImporter struct {
	store  domain.Store
	logger *slog.Logger
}

// NewCSVImporter creates the batch CSV import pipeline. The batch runs as one
// unit of work with fail-fast row policy: a CSV upload is a one-shot user
// action and partial imports are worse than a clean retry.
func NewCSVImporter(store domain.Store, logger *slog.Logger) domain.CSVImporter {
	return &csvImporter{store: store, logger: logger}
}

func (i *csvImporter) Import(ctx context.Context, rd io.Reader) (*domain.CSVImportReport, error) {
	report := &domain.CSVImportReport{}
	err := i.store.WithinTx(ctx, func(r *domain.Repos) error {
		reader := csv.NewReader(rd)
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true

		header, err := reader.Read()
		if err != nil {
			return fmt.Errorf("read csv header: %w", err)
		}
		cols := indexColumns(header)

		// One resolver for the whole batch: rows repeating a new artist or
		// venue before any flush must still resolve to one entity.
		res := NewResolver(r)
		// (venueID, date) of gigs already materialized this batch; a repeated
		// row becomes an update of the earlier gig rather than a duplicate.
		materialized := make(map[string]string)

		line := 1
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			line++
			if err != nil {
				return fmt.Errorf("row %d: read: %w", line, err)
			}

			if err := i.importRow(ctx, r, res, cols, record, materialized, report); err != nil {
				i.logger.Error("csv import aborted",
					"row", line,
					"err", err,
				)
				return fmt.Errorf("row %d: %w", line, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (i *csvImporter) importRow(
	ctx context.Context,
	r *domain.Repos,
	res *Resolver,
	cols map[string]int,
	record []string,
	materialized map[string]string,
	report *domain.CSVImportReport,
) error {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rawDate := cell(colDate)
	headliner := cell(colHeadliner)
	venueName := cell(colVenue)
	if rawDate == "" || headliner == "" || venueName == "" {
		// Incomplete rows are skipped silently and not counted.
		return nil
	}

	date, err := parseCSVDate(rawDate)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", rawDate, err)
	}

	venueID, err := res.Venue(ctx, domain.ByName(venueName), cell(colCity))
	if err != nil {
		return err
	}

	req := domain.UpsertGigRequest{
		Venue:      domain.ByID(venueID),
		Date:       date,
		TicketCost: parseCost(cell(colTicketCost)),
		TicketType: domain.ParseTicketType(cell(colTicketType)),
	}

	// Headliner first; its setlist URL comes only from the headliner column.
	setlistURL := cell(colSetlistURL)
	headAct := domain.ActInput{
		Artist:      domain.ByName(headliner),
		IsHeadliner: true,
	}
	if setlistURL != "" {
		headAct.SetlistURL = &setlistURL
	}
	req.Acts = append(req.Acts, headAct)
	for _, name := range splitNames(cell(colSupportActs)) {
		req.Acts = append(req.Acts, domain.ActInput{Artist: domain.ByName(name)})
	}

	for _, name := range splitNames(cell(colWentWith)) {
		req.Attendees = append(req.Attendees, domain.ByName(name))
	}

	key := venueID + "\x00" + date.Format("2006-01-02")
	if gigID, ok := materialized[key]; ok {
		req.GigID = gigID
	}
	gig, _, err := upsertGig(ctx, r, res, req)
	if err != nil {
		return err
	}
	materialized[key] = gig.ID
	report.Processed++
	return nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func parseCSVDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range csvDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// splitNames splits a free-text list of names on commas and slashes.
// Ampersands are part of band names ("Nick Cave & The Bad Seeds") and are not
// split on.
func splitNames(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '/'
	})
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// parseCost strips currency symbols and whitespace and parses the remainder
// as a decimal. Invalid or empty text resolves to "unset", never an error.
func parseCost(s string) decimal.NullDecimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
