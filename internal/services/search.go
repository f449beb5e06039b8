package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"giglog/internal/domain"
)

const defaultSearchLimit = 20

type searchService struct {
	store domain.Store
}

// NewSearchService creates a local fuzzy search over artist, venue and person
// names.
func NewSearchService(store domain.Store) domain.SearchService {
	return &searchService{store: store}
}

func (s *searchService) Search(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", domain.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	repos := s.store.Repos()

	type candidate struct {
		hit  domain.SearchHit
		rank int
	}
	var candidates []candidate

	collect := func(kind string, list func(context.Context) ([]domain.NameRef, error)) error {
		refs, err := list(ctx)
		if err != nil {
			return fmt.Errorf("list %s names: %w", kind, err)
		}
		for _, ref := range refs {
			rank := fuzzy.RankMatchNormalizedFold(query, ref.Name)
			if rank < 0 {
				continue
			}
			candidates = append(candidates, candidate{
				hit:  domain.SearchHit{Kind: kind, ID: ref.ID, Name: ref.Name},
				rank: rank,
			})
		}
		return nil
	}

	if err := collect("artist", repos.Artists.ListNames); err != nil {
		return nil, err
	}
	if err := collect("venue", repos.Venues.ListNames); err != nil {
		return nil, err
	}
	if err := collect("person", repos.People.ListNames); err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rank < candidates[j].rank
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	hits := make([]domain.SearchHit, 0, len(candidates))
	for _, c := range candidates {
		hits = append(hits, c.hit)
	}
	return hits, nil
}
