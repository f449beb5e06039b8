package services

import (
	"context"
	"errors"
	"fmt"

	"giglog/internal/domain"
)

type festivalService struct {
	store domain.Store
}

// NewFestivalService creates a FestivalService over the given store.
func NewFestivalService(store domain.Store) domain.FestivalService {
	return &festivalService{store: store}
}

func (s *festivalService) SetAttendees(ctx context.Context, festivalID string, people []domain.Reference) ([]*domain.FestivalAttendee, error) {
	var out []*domain.FestivalAttendee
	err := s.store.WithinTx(ctx, func(r *domain.Repos) error {
		if _, err := r.Festivals.GetByID(ctx, festivalID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("festival %s: %w", festivalID, domain.ErrNotFound)
			}
			return fmt.Errorf("get festival: %w", err)
		}

		res := NewResolver(r)
		personIDs := make([]string, 0, len(people))
		for _, ref := range people {
			id, err := res.Person(ctx, ref)
			if err != nil {
				return err
			}
			personIDs = append(personIDs, id)
		}

		existing, err := r.Festivals.ListAttendees(ctx, festivalID)
		if err != nil {
			return fmt.Errorf("list attendees: %w", err)
		}
		err = reconcile(existing, personIDs,
			func(a *domain.FestivalAttendee) string { return a.PersonID },
			func(id string) string { return id },
			func(a *domain.FestivalAttendee, id string) error { return nil },
			func(id string) error { return r.Festivals.AddAttendee(ctx, festivalID, id) },
			func(a *domain.FestivalAttendee) error { return r.Festivals.RemoveAttendee(ctx, festivalID, a.PersonID) },
		)
		if err != nil {
			return err
		}

		out, err = r.Festivals.ListAttendees(ctx, festivalID)
		if err != nil {
			return fmt.Errorf("list attendees: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *festivalService) Delete(ctx context.Context, festivalID string) error {
	return s.store.WithinTx(ctx, func(r *domain.Repos) error {
		return r.Festivals.Delete(ctx, festivalID)
	})
}
