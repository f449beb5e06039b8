package domain

import "context"

// EnrichmentSong is one suggested setlist entry from the enrichment provider.
type EnrichmentSong struct {
	Title           string  `json:"title"`
	IsEncore        bool    `json:"is_encore"`
	Info            *string `json:"info,omitempty"`
	IsTape          bool    `json:"is_tape"`
	WithArtistName  *string `json:"with_artist_name,omitempty"`
	CoverArtistName *string `json:"cover_artist_name,omitempty"`
}

// Enrichment is a best-effort structured suggestion for a gig. Empty fields
// mean "nothing known".
type Enrichment struct {
	SupportActs      []string         `json:"support_acts,omitempty"`
	Setlist          []EnrichmentSong `json:"setlist,omitempty"`
	ImageSearchQuery *string          `json:"image_search_query,omitempty"`
}

// Enricher asks an external collaborator for gig enrichment. Any failure or
// empty result is treated as "no enrichment available" and is never fatal to
// the surrounding upsert.
type Enricher interface {
	EnrichGig(ctx context.Context, artistName, venueName string, dateISO string) (*Enrichment, error)
}
