package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CalendarEvent is one event from the external calendar provider. The core
// never fetches these itself.
type CalendarEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// CalendarFetcher lists calendar events for a time range.
type CalendarFetcher interface {
	List(ctx context.Context, from, to time.Time) ([]CalendarEvent, error)
}

// GigCandidate is the outcome of matching a calendar event: enough to feed the
// gig upsert path. A nil candidate means the event is not a gig.
type GigCandidate struct {
	ArtistName  string
	Venue       *Venue
	Date        time.Time
	SupportActs []string
	TicketCost  decimal.NullDecimal
}

// CalendarSyncReport summarizes one calendar sync run.
// swagger:model CalendarSyncReport
type CalendarSyncReport struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// CalendarImporter matches calendar events to gigs and imports them.
type CalendarImporter interface {
	// Match decides whether the event represents a gig. Returns nil when it
	// does not (no venue resolvable, or an artist-titled event with no location).
	Match(ctx context.Context, event CalendarEvent) (*GigCandidate, error)
	// Sync fetches events in [from, to] and imports every matched candidate.
	// Conflicting events are skipped, not fatal.
	Sync(ctx context.Context, from, to time.Time) (*CalendarSyncReport, error)
}
