package domain

import (
	"testing"
	"time"
)

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats != (FocusStats{}) {
		t.Errorf("ComputeStats(nil) = %+v, want zero value", stats)
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Now()
	sessions := []*FocusSession{
		{ID: "1", CompletedAt: now, DurationMinutes: 45, Completed: true, DistractionCount: 0},
		{ID: "2", CompletedAt: now, DurationMinutes: 30, Completed: false, DistractionCount: 3},
		nil,
	}

	stats := ComputeStats(sessions)
	if stats.Total != 2 {
		t.Errorf("Total = %d, want 2", stats.Total)
	}
	if stats.Completed != 1 {
		t.Errorf("Completed = %d, want 1", stats.Completed)
	}
	if stats.TotalMinutes != 75 {
		t.Errorf("TotalMinutes = %d, want 75", stats.TotalMinutes)
	}
	if stats.AverageMinutes != 38 {
		t.Errorf("AverageMinutes = %d, want 38 (37.5 rounded)", stats.AverageMinutes)
	}
	if stats.AverageDistractions != 1.5 {
		t.Errorf("AverageDistractions = %v, want 1.5", stats.AverageDistractions)
	}
}

func TestFocusSession_StatusLabel(t *testing.T) {
	if (&FocusSession{Completed: true}).StatusLabel() != "Completed" {
		t.Error("completed session should be labelled Completed")
	}
	if (&FocusSession{}).StatusLabel() != "Incomplete" {
		t.Error("reset session should be labelled Incomplete")
	}
}
