package domain

import (
	"math"
	"time"
)

// FocusSession is the immutable record of one finished focus cycle.
type FocusSession struct {
	ID               string    `json:"id"`
	CompletedAt      time.Time `json:"completed_at"`
	DurationMinutes  int       `json:"duration_minutes"`
	Completed        bool      `json:"completed"`
	DistractionCount int       `json:"distraction_count"`
}

// StatusLabel returns the label shown next to a session in history listings.
func (s *FocusSession) StatusLabel() string {
	if s.Completed {
		return "Completed"
	}
	return "Incomplete"
}

// studiedMinutes converts elapsed time to whole minutes, rounding half up.
func studiedMinutes(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round(elapsed.Seconds() / 60))
}
