package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"giglog/internal/domain"
)

// titleSeparatorRe finds the " @ venue" / " at venue" / " - venue" tail of an
// event title.
var titleSeparatorRe = regexp.MustCompile(`(?i)\s+(?:@|at|-)\s+`)

// liveSuffixRe strips decorative "(Live)" / "- Live" tails when trying the
// title as an artist name.
var liveSuffixRe = regexp.MustCompile(`(?i)\s*(?:\(live\)|-\s*live)\s*$`)

// supportActsRe captures the text after a "support:"-style label in an event
// description.
var supportActsRe = regexp.MustCompile(`(?i)support(?:s|ing)?(?:\s+acts?)?\s*:\s*([^\r\n]+)`)

// costRe matches a currency symbol followed by a decimal amount.
var costRe = regexp.MustCompile(`[£$€]\s*(\d+(?:\.\d{1,2})?)`)

type calendarImporter struct {
	store   domain.Store
	fetcher domain.CalendarFetcher
	logger  *slog.Logger
}

// NewCalendarImporter creates the heuristic calendar-to-gig importer. Sync is
// fail-soft: it is a recurring background job, so one conflicting event is
// skipped rather than aborting the run.
func NewCalendarImporter(store domain.Store, fetcher domain.CalendarFetcher, logger *slog.Logger) domain.CalendarImporter {
	return &calendarImporter{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
	}
}

func (i *calendarImporter) Match(ctx context.Context, event domain.CalendarEvent) (*domain.GigCandidate, error) {
	repos := i.store.Repos()

	location := ""
	if event.Location != nil {
		location = strings.TrimSpace(*event.Location)
	}

	venue, err := i.matchVenueByLocation(ctx, repos, location)
	if err != nil {
		return nil, err
	}

	if venue == nil {
		// No venue from the location; maybe the title itself is an artist we
		// already know, with the venue hiding in the first location segment.
		artist, err := i.matchArtistByTitle(ctx, repos, event.Title)
		if err != nil {
			return nil, err
		}
		if artist == nil {
			return nil, nil
		}
		if location == "" {
			// An artist-titled event with nowhere to play is not a gig.
			return nil, nil
		}
		seg := strings.TrimSpace(firstSegment(location))
		venue, err = getVenueFold(ctx, repos, seg)
		if err != nil {
			return nil, err
		}
		if venue == nil {
			venue, err = findVenueWithin(ctx, repos, seg)
			if err != nil {
				return nil, err
			}
		}
	}
	if venue == nil {
		return nil, nil
	}

	candidate := &domain.GigCandidate{
		ArtistName: headlinerFromTitle(event.Title),
		Venue:      venue,
		Date:       truncateToDay(event.Start),
	}
	if event.Description != nil {
		candidate.SupportActs = extractSupportActs(*event.Description)
		candidate.TicketCost = parseCost(costRe.FindString(*event.Description))
	}
	return candidate, nil
}

func (i *calendarImporter) Sync(ctx context.Context, from, to time.Time) (*domain.CalendarSyncReport, error) {
	events, err := i.fetcher.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	report := &domain.CalendarSyncReport{}
	for _, event := range events {
		candidate, err := i.Match(ctx, event)
		if err != nil {
			return nil, fmt.Errorf("match event %s: %w", event.ID, err)
		}
		if candidate == nil {
			report.Skipped++
			continue
		}

		req := domain.UpsertGigRequest{
			Venue:      domain.ByID(candidate.Venue.ID),
			Date:       candidate.Date,
			TicketCost: candidate.TicketCost,
			TicketType: domain.TicketOther,
			Acts: []domain.ActInput{
				{Artist: domain.ByName(candidate.ArtistName), IsHeadliner: true},
			},
		}
		for _, name := range candidate.SupportActs {
			req.Acts = append(req.Acts, domain.ActInput{Artist: domain.ByName(name)})
		}

		var created bool
		// Each event commits on its own so a later failure cannot lose
		// earlier progress.
		err = i.store.WithinTx(ctx, func(r *domain.Repos) error {
			_, c, err := upsertGig(ctx, r, NewResolver(r), req)
			created = c
			return err
		})
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				i.logger.Warn("calendar event skipped on conflict",
					"event_id", event.ID,
					"title", event.Title,
					"err", err,
				)
				report.Skipped++
				continue
			}
			return nil, fmt.Errorf("import event %s: %w", event.ID, err)
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}
	return report, nil
}

// matchVenueByLocation tries, in order: any venue whose name is a substring of
// the location, then exact name on the first comma segment, then exact
// (name, city) on the (first, last) segments.
func (i *calendarImporter) matchVenueByLocation(ctx context.Context, repos *domain.Repos, location string) (*domain.Venue, error) {
	if location == "" {
		return nil, nil
	}
	venue, err := findVenueWithin(ctx, repos, location)
	if err != nil || venue != nil {
		return venue, err
	}
	if !strings.Contains(location, ",") {
		return nil, nil
	}
	segments := splitSegments(location)
	venue, err = getVenueFold(ctx, repos, segments[0])
	if err != nil || venue != nil {
		return venue, err
	}
	venue, err = getVenueCityFold(ctx, repos, segments[0], segments[len(segments)-1])
	if err != nil || venue != nil {
		return venue, err
	}
	return nil, nil
}

// matchArtistByTitle tries the title as an existing artist name, exact first,
// then with decorative live suffixes stripped. Unknown artists do not match:
// this path only rescues events for artists we already track.
func (i *calendarImporter) matchArtistByTitle(ctx context.Context, repos *domain.Repos, title string) (*domain.Artist, error) {
	title = strings.TrimSpace(title)
	artist, err := repos.Artists.GetByNameFold(ctx, title)
	if err == nil {
		return artist, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get artist by name: %w", err)
	}
	stripped := strings.TrimSpace(liveSuffixRe.ReplaceAllString(title, ""))
	if stripped == "" || stripped == title {
		return nil, nil
	}
	artist, err = repos.Artists.GetByNameFold(ctx, stripped)
	if err == nil {
		return artist, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get artist by name: %w", err)
	}
	return nil, nil
}

// headlinerFromTitle strips a trailing " @ venue" / " at venue" / " - venue"
// from an event title. If stripping would empty the title, the untouched
// title stands.
func headlinerFromTitle(title string) string {
	title = strings.TrimSpace(title)
	loc := titleSeparatorRe.FindStringIndex(title)
	if loc == nil {
		return title
	}
	name := strings.TrimSpace(title[:loc[0]])
	if name == "" {
		return title
	}
	return name
}

// extractSupportActs pulls support act names out of free text, splitting on
// comma, ampersand and slash.
func extractSupportActs(description string) []string {
	m := supportActsRe.FindStringSubmatch(description)
	if m == nil {
		return nil
	}
	parts := strings.FieldsFunc(m[1], func(r rune) bool {
		return r == ',' || r == '&' || r == '/'
	})
	acts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			acts = append(acts, p)
		}
	}
	if len(acts) == 0 {
		return nil
	}
	return acts
}

func firstSegment(location string) string {
	if idx := strings.Index(location, ","); idx >= 0 {
		return location[:idx]
	}
	return location
}

func splitSegments(location string) []string {
	parts := strings.Split(location, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getVenueFold(ctx context.Context, repos *domain.Repos, name string) (*domain.Venue, error) {
	venue, err := repos.Venues.GetByNameFold(ctx, name)
	if err == nil {
		return venue, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("get venue by name: %w", err)
}

func getVenueCityFold(ctx context.Context, repos *domain.Repos, name, city string) (*domain.Venue, error) {
	venue, err := repos.Venues.GetByNameCityFold(ctx, name, city)
	if err == nil {
		return venue, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("get venue by name and city: %w", err)
}

func findVenueWithin(ctx context.Context, repos *domain.Repos, text string) (*domain.Venue, error) {
	venue, err := repos.Venues.FindNameWithin(ctx, text)
	if err == nil {
		return venue, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("find venue in text: %w", err)
}
