package domain

import "errors"

// Domain errors.
var (
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrTimerRunning      = errors.New("timer is running")
	ErrSessionNotFound   = errors.New("focus session not found")
	ErrDuplicateSession  = errors.New("focus session already recorded")
	ErrStudyTaskNotFound = errors.New("study task not found")
)
