package domain

import "context"

// AttendanceStats are derived metrics over all recorded gigs.
// swagger:model AttendanceStats
type AttendanceStats struct {
	TotalGigs int `json:"total_gigs"`
	// GigsPerYear maps year to gig count.
	GigsPerYear map[int]int `json:"gigs_per_year"`
	// LongestMonthStreak is the longest run of consecutive calendar months with
	// at least one gig; multiple gigs in one month count once.
	LongestMonthStreak int `json:"longest_month_streak"`
}

// StatsService computes attendance metrics.
type StatsService interface {
	Attendance(ctx context.Context) (*AttendanceStats, error)
}
