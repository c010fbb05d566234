package domain

import "math"

// FocusStats aggregates a list of focus sessions.
type FocusStats struct {
	Total               int     `json:"total"`
	Completed           int     `json:"completed"`
	TotalMinutes        int     `json:"total_minutes"`
	AverageMinutes      int     `json:"average_minutes"`
	TotalDistractions   int     `json:"total_distractions"`
	AverageDistractions float64 `json:"average_distractions"`
}

// ComputeStats summarizes sessions. An empty input yields zero values.
func ComputeStats(sessions []*FocusSession) FocusStats {
	var stats FocusStats
	for _, s := range sessions {
		if s == nil {
			continue
		}
		stats.Total++
		if s.Completed {
			stats.Completed++
		}
		stats.TotalMinutes += s.DurationMinutes
		stats.TotalDistractions += s.DistractionCount
	}
	if stats.Total == 0 {
		return stats
	}
	stats.AverageMinutes = int(math.Round(float64(stats.TotalMinutes) / float64(stats.Total)))
	stats.AverageDistractions = float64(stats.TotalDistractions) / float64(stats.Total)
	return stats
}
