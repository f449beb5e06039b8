package domain

import (
	"context"
	"time"
)

// Song belongs to one artist. Unique per (artist, title), case-insensitive.
// swagger:model Song
type Song struct {
	ID        string    `json:"id"`
	ArtistID  string    `json:"artist_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSong returns a new Song. ID is set by the repository on create.
func NewSong(artistID, title, slug string, createdAt, updatedAt time.Time) *Song {
	return &Song{
		ArtistID:  artistID,
		Title:     title,
		Slug:      slug,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SongRepository defines the interface for song storage
type SongRepository interface {
	Create(ctx context.Context, song *Song) error
	GetByID(ctx context.Context, id string) (*Song, error)
	// GetByArtistAndTitleFold resolves a song by owning artist and title,
	// case-insensitively.
	GetByArtistAndTitleFold(ctx context.Context, artistID, title string) (*Song, error)
}
