// Package ports defines the interfaces (driven and driving ports)
// for the Focus application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/focus-cli/internal/domain"
)

// SessionRepository defines the interface for the focus session archive.
// Records are append-only.
// This is a driven port (implemented by adapters).
type SessionRepository interface {
	// Append stores a finished focus session.
	Append(ctx context.Context, session *domain.FocusSession) error

	// FindByID retrieves a session by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.FocusSession, error)

	// FindAll returns every archived session in chronological order.
	FindAll(ctx context.Context) ([]*domain.FocusSession, error)

	// FindSince returns sessions completed at or after since, oldest first.
	FindSince(ctx context.Context, since time.Time) ([]*domain.FocusSession, error)
}

// StudyPlanRepository defines the interface for the study timetable.
// This is a driven port (implemented by adapters).
type StudyPlanRepository interface {
	// Add appends tasks to the timetable.
	Add(ctx context.Context, tasks []domain.StudyTask) error

	// FindAll returns every task ordered by date, then by insertion.
	FindAll(ctx context.Context) ([]domain.StudyTask, error)

	// SetCompleted marks a task done or not done.
	SetCompleted(ctx context.Context, id string, completed bool) error

	// Delete removes a task.
	Delete(ctx context.Context, id string) error

	// Clear removes every task.
	Clear(ctx context.Context) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Sessions provides access to the session archive.
	Sessions() SessionRepository

	// Plans provides access to the study timetable.
	Plans() StudyPlanRepository

	// Close releases the underlying resources.
	Close() error

	// Migrate prepares the storage schema.
	Migrate() error
}
