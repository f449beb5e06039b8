package services

import (
	"context"
	"fmt"
	"sort"

	"giglog/internal/domain"
)

type statsService struct {
	store domain.Store
}

// NewStatsService creates the attendance metrics service.
func NewStatsService(store domain.Store) domain.StatsService {
	return &statsService{store: store}
}

func (s *statsService) Attendance(ctx context.Context) (*domain.AttendanceStats, error) {
	dates, err := s.store.Repos().Gigs.ListDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gig dates: %w", err)
	}

	stats := &domain.AttendanceStats{
		TotalGigs:   len(dates),
		GigsPerYear: make(map[int]int),
	}

	// Months with at least one gig, as year*12+month ordinals; several gigs in
	// one month collapse to one unit.
	monthSet := make(map[int]struct{})
	for _, d := range dates {
		stats.GigsPerYear[d.Year()]++
		monthSet[d.Year()*12+int(d.Month())-1] = struct{}{}
	}

	months := make([]int, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Ints(months)

	streak := 0
	for i, m := range months {
		if i == 0 || m != months[i-1]+1 {
			streak = 1
		} else {
			streak++
		}
		if streak > stats.LongestMonthStreak {
			stats.LongestMonthStreak = streak
		}
	}
	return stats, nil
}
