package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Festival is a multi-day container for gigs, with its own pricing and
// attendee tracking. Per-day pricing belongs here, not on festival gigs.
// swagger:model Festival
type Festival struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Year           *int                `json:"year,omitempty"`
	Slug           string              `json:"slug"`
	ImageURL       *string             `json:"image_url,omitempty"`
	PosterImageURL *string             `json:"poster_image_url,omitempty"`
	VenueID        *string             `json:"venue_id,omitempty"`
	StartDate      *time.Time          `json:"start_date,omitempty"`
	EndDate        *time.Time          `json:"end_date,omitempty"`
	Price          decimal.NullDecimal `json:"price"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// NewFestival returns a new Festival. ID is set by the repository on create.
func NewFestival(name, slug string, createdAt, updatedAt time.Time) *Festival {
	return &Festival{
		Name:      name,
		Slug:      slug,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// FestivalAttendee links a person to a festival. Unique per (festival, person).
type FestivalAttendee struct {
	FestivalID string `json:"festival_id"`
	PersonID   string `json:"person_id"`
}

// FestivalRepository defines the interface for festival storage
type FestivalRepository interface {
	Create(ctx context.Context, festival *Festival) error
	GetByID(ctx context.Context, id string) (*Festival, error)
	GetByNameFold(ctx context.Context, name string) (*Festival, error)
	ListAttendees(ctx context.Context, festivalID string) ([]*FestivalAttendee, error)
	AddAttendee(ctx context.Context, festivalID, personID string) error
	RemoveAttendee(ctx context.Context, festivalID, personID string) error
	// Delete removes the festival and cascades to its attendee rows; gigs keep
	// existing with festival_id cleared.
	Delete(ctx context.Context, id string) error
}

// FestivalService exposes festival-level operations built on the same
// resolution and reconciliation rules as gigs.
type FestivalService interface {
	// SetAttendees reconciles the festival's attendee set against the given
	// person references, creating people referenced by name as needed.
	SetAttendees(ctx context.Context, festivalID string, people []Reference) ([]*FestivalAttendee, error)
	// Delete removes the festival; its gigs survive with the link cleared.
	Delete(ctx context.Context, festivalID string) error
}
