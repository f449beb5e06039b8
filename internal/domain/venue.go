package domain

import (
	"context"
	"time"
)

// UnknownCity is the sentinel city recorded when input names a venue without
// saying where it is.
const UnknownCity = "Unknown"

// Venue represents a concert venue. Identity for deduplication is
// (name, city), case-insensitive.
// swagger:model Venue
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Slug      string    `json:"slug"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVenue returns a new Venue. ID is set by the repository on create.
func NewVenue(name, city, slug string, createdAt, updatedAt time.Time) *Venue {
	if city == "" {
		city = UnknownCity
	}
	return &Venue{
		Name:      name,
		City:      city,
		Slug:      slug,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// VenueRepository defines the interface for venue storage
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	// GetByNameFold resolves a venue by name only, case-insensitively. When
	// several cities share the name the oldest row wins.
	GetByNameFold(ctx context.Context, name string) (*Venue, error)
	// GetByNameCityFold resolves a venue by (name, city), case-insensitively.
	GetByNameCityFold(ctx context.Context, name, city string) (*Venue, error)
	// FindNameWithin returns a venue whose name appears, case-insensitively, as
	// a substring of the given free text (e.g. a calendar event location).
	FindNameWithin(ctx context.Context, text string) (*Venue, error)
	ListNames(ctx context.Context) ([]NameRef, error)
}
