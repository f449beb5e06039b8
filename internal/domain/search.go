package domain

import "context"

// SearchHit is one fuzzy search result across artists, venues and people.
// swagger:model SearchHit
type SearchHit struct {
	Kind string `json:"kind"` // "artist", "venue" or "person"
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchService ranks entity names against a free-text query, locally.
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
}
