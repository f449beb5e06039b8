package domain

import (
	"context"
	"time"
)

// Artist represents a performing artist or band.
// swagger:model Artist
type Artist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewArtist returns a new Artist. ID is set by the repository on create.
func NewArtist(name, slug string, createdAt, updatedAt time.Time) *Artist {
	return &Artist{
		Name:      name,
		Slug:      slug,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// NameRef is a lightweight (id, name) pair used by search and matching.
type NameRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ArtistRepository defines the interface for artist storage
type ArtistRepository interface {
	Create(ctx context.Context, artist *Artist) error
	GetByID(ctx context.Context, id string) (*Artist, error)
	// GetByNameFold resolves an artist by name, case-insensitively.
	GetByNameFold(ctx context.Context, name string) (*Artist, error)
	ListNames(ctx context.Context) ([]NameRef, error)
}
