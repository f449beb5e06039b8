package services

import (
	"context"

	"giglog/internal/domain"
)

type personService struct {
	store domain.Store
}

// NewPersonService creates a PersonService over the given store.
func NewPersonService(store domain.Store) domain.PersonService {
	return &personService{store: store}
}

func (s *personService) Delete(ctx context.Context, personID string) error {
	return s.store.WithinTx(ctx, func(r *domain.Repos) error {
		return r.People.Delete(ctx, personID)
	})
}
