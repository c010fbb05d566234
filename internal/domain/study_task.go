package domain

import (
	"math"
	"time"
)

// StudyTask is one entry of the study timetable.
type StudyTask struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Subject     string    `json:"subject"`
	Chapter     string    `json:"chapter"`
	Priority    string    `json:"priority"`
	TimeSlot    string    `json:"time_slot"`
	Completed   bool      `json:"completed"`
}

// ToggleComplete flips the completion mark.
func (t *StudyTask) ToggleComplete() {
	t.Completed = !t.Completed
}

// PlanProgress returns the rounded percentage of completed tasks.
func PlanProgress(tasks []StudyTask) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}
