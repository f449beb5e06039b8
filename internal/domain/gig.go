package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TicketType classifies how a gig was attended.
type TicketType string

// Ticket types. Unrecognized input maps to TicketOther.
const (
	TicketStanding  TicketType = "standing"
	TicketSeated    TicketType = "seated"
	TicketVIP       TicketType = "vip"
	TicketGuestList TicketType = "guest_list"
	TicketOther     TicketType = "other"
)

// ticketTypeLabels is the static bidirectional table between ticket type
// variants and their canonical human-readable labels.
var ticketTypeLabels = map[TicketType]string{
	TicketStanding:  "Standing",
	TicketSeated:    "Seated",
	TicketVIP:       "VIP",
	TicketGuestList: "GuestList",
	TicketOther:     "Other",
}

// Label returns the canonical human-readable label for the ticket type.
func (t TicketType) Label() string {
	if l, ok := ticketTypeLabels[t]; ok {
		return l
	}
	return ticketTypeLabels[TicketOther]
}

// ParseTicketType maps a label to a TicketType by case-insensitive name match,
// ignoring spaces and underscores ("Guest List", "guest_list" and "GuestList"
// are all TicketGuestList). Unrecognized or empty text maps to TicketOther.
func ParseTicketType(s string) TicketType {
	fold := func(s string) string {
		s = strings.ReplaceAll(s, " ", "")
		return strings.ToLower(strings.ReplaceAll(s, "_", ""))
	}
	in := fold(strings.TrimSpace(s))
	for t, label := range ticketTypeLabels {
		if in == fold(label) || in == fold(string(t)) {
			return t
		}
	}
	return TicketOther
}

// Gig is a single concert instance at one venue on one date. It owns an
// ordered list of acts and a set of attendees.
// swagger:model Gig
type Gig struct {
	ID         string              `json:"id"`
	VenueID    string              `json:"venue_id"`
	FestivalID *string             `json:"festival_id,omitempty"`
	Date       time.Time           `json:"date"`
	Order      int                 `json:"order"`
	TicketCost decimal.NullDecimal `json:"ticket_cost"`
	TicketType TicketType          `json:"ticket_type"`
	ImageURL   *string             `json:"image_url,omitempty"`
	Slug       string              `json:"slug"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`

	Acts      []*GigArtist   `json:"acts,omitempty"`
	Attendees []*GigAttendee `json:"attendees,omitempty"`
}

// GigArtist is one artist's appearance at a gig, with its own ordered setlist.
// At most one row per (gig, artist).
// swagger:model GigArtist
type GigArtist struct {
	ID          string    `json:"id"`
	GigID       string    `json:"gig_id"`
	ArtistID    string    `json:"artist_id"`
	IsHeadliner bool      `json:"is_headliner"`
	Order       int       `json:"order"`
	SetlistURL  *string   `json:"setlist_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Songs []*GigArtistSong `json:"songs,omitempty"`
}

// GigArtistSong is one setlist entry. At most one row per (act, song).
// swagger:model GigArtistSong
type GigArtistSong struct {
	ID            string  `json:"id"`
	GigArtistID   string  `json:"gig_artist_id"`
	SongID        string  `json:"song_id"`
	Order         int     `json:"order"`
	IsEncore      bool    `json:"is_encore"`
	Info          *string `json:"info,omitempty"`
	IsTape        bool    `json:"is_tape"`
	WithArtistID  *string `json:"with_artist_id,omitempty"`
	CoverArtistID *string `json:"cover_artist_id,omitempty"`
}

// GigAttendee links a person to a gig. Unique per (gig, person).
type GigAttendee struct {
	GigID    string `json:"gig_id"`
	PersonID string `json:"person_id"`
}

// SetlistEntryInput is one desired setlist entry keyed by song title within
// the act's artist.
type SetlistEntryInput struct {
	Title       string
	IsEncore    bool
	Info        *string
	IsTape      bool
	WithArtist  Reference
	CoverArtist Reference
}

// ActInput is one desired act for a gig.
type ActInput struct {
	Artist      Reference
	IsHeadliner bool
	Order       int
	SetlistURL  *string
	Setlist     []SetlistEntryInput
}

// UpsertGigRequest is the single input shape for creating or updating a gig
// from any ingestion path. A zero GigID means create (subject to duplicate
// detection on venue+date+headliner).
type UpsertGigRequest struct {
	GigID      string
	Venue      Reference
	VenueCity  string
	Festival   Reference
	Date       time.Time
	Order      int
	TicketCost decimal.NullDecimal
	TicketType TicketType
	ImageURL   *string
	Acts       []ActInput
	Attendees  []Reference
}

// GigRepository defines the interface for gig storage, including the act,
// setlist and attendee join rows owned by a gig.
type GigRepository interface {
	Create(ctx context.Context, gig *Gig) error
	Update(ctx context.Context, gig *Gig) error
	GetByID(ctx context.Context, id string) (*Gig, error)
	// FindDuplicate returns an existing gig at the venue, on the date, whose
	// headliner is the given artist; ErrNotFound when there is none.
	FindDuplicate(ctx context.Context, venueID string, date time.Time, headlinerArtistID string) (*Gig, error)
	// Delete removes the gig and cascades to its act, setlist and attendee rows.
	Delete(ctx context.Context, id string) error
	// ListDates returns the dates of all gigs, for derived attendance metrics.
	ListDates(ctx context.Context) ([]time.Time, error)

	ListActs(ctx context.Context, gigID string) ([]*GigArtist, error)
	CreateAct(ctx context.Context, act *GigArtist) error
	UpdateAct(ctx context.Context, act *GigArtist) error
	// DeleteAct removes the act row and cascades to its setlist entries.
	DeleteAct(ctx context.Context, actID string) error

	ListActSongs(ctx context.Context, actID string) ([]*GigArtistSong, error)
	CreateActSong(ctx context.Context, entry *GigArtistSong) error
	UpdateActSong(ctx context.Context, entry *GigArtistSong) error
	DeleteActSong(ctx context.Context, entryID string) error

	ListAttendees(ctx context.Context, gigID string) ([]*GigAttendee, error)
	AddAttendee(ctx context.Context, gigID, personID string) error
	RemoveAttendee(ctx context.Context, gigID, personID string) error
}

// GigService defines the upsert orchestrator and the read/delete operations
// around it.
type GigService interface {
	// UpsertGig creates or updates a gig per the reconciliation rules.
	// Returns (gig, created, err): created is true when a new gig row was
	// inserted, false when an existing one was updated (including when
	// duplicate detection redirected a create).
	UpsertGig(ctx context.Context, req UpsertGigRequest) (*Gig, bool, error)
	GetGig(ctx context.Context, gigID string) (*Gig, error)
	DeleteGig(ctx context.Context, gigID string) error
}
