package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xvierd/focus-cli/internal/domain"
	"github.com/xvierd/focus-cli/internal/ports"
)

// memoryStorage keeps the session archive and timetable in process memory.
// Everything is discarded when the process exits.
type memoryStorage struct {
	sessions *memorySessionRepository
	plans    *memoryPlanRepository
}

// Ensure memoryStorage implements ports.Storage.
var _ ports.Storage = (*memoryStorage)(nil)

// NewMemory creates an empty in-process storage.
func NewMemory() ports.Storage {
	return &memoryStorage{
		sessions: &memorySessionRepository{byID: make(map[string]*domain.FocusSession)},
		plans:    &memoryPlanRepository{},
	}
}

func (s *memoryStorage) Sessions() ports.SessionRepository { return s.sessions }
func (s *memoryStorage) Plans() ports.StudyPlanRepository  { return s.plans }
func (s *memoryStorage) Close() error                      { return nil }
func (s *memoryStorage) Migrate() error                    { return nil }

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions []*domain.FocusSession
	byID     map[string]*domain.FocusSession
}

func (r *memorySessionRepository) Append(ctx context.Context, session *domain.FocusSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[session.ID]; exists {
		return domain.ErrDuplicateSession
	}
	stored := *session
	r.sessions = append(r.sessions, &stored)
	r.byID[stored.ID] = &stored
	return nil
}

func (r *memorySessionRepository) FindByID(ctx context.Context, id string) (*domain.FocusSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	out := *s
	return &out, nil
}

func (r *memorySessionRepository) FindAll(ctx context.Context) ([]*domain.FocusSession, error) {
	return r.filter(func(*domain.FocusSession) bool { return true }), nil
}

func (r *memorySessionRepository) FindSince(ctx context.Context, since time.Time) ([]*domain.FocusSession, error) {
	return r.filter(func(s *domain.FocusSession) bool { return !s.CompletedAt.Before(since) }), nil
}

// filter copies matching sessions in insertion order.
func (r *memorySessionRepository) filter(keep func(*domain.FocusSession) bool) []*domain.FocusSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.FocusSession
	for _, s := range r.sessions {
		if keep(s) {
			c := *s
			out = append(out, &c)
		}
	}
	return out
}

type memoryPlanRepository struct {
	mu    sync.RWMutex
	tasks []domain.StudyTask
}

func (r *memoryPlanRepository) Add(ctx context.Context, tasks []domain.StudyTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = append(r.tasks, tasks...)
	return nil
}

// FindAll sorts a copy by day; the stable sort keeps insertion order within a day.
func (r *memoryPlanRepository) FindAll(ctx context.Context) ([]domain.StudyTask, error) {
	r.mu.RLock()
	out := make([]domain.StudyTask, len(r.tasks))
	copy(out, r.tasks)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Format(planDateLayout) < out[j].Date.Format(planDateLayout)
	})
	return out, nil
}

func (r *memoryPlanRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i].Completed = completed
			return nil
		}
	}
	return domain.ErrStudyTaskNotFound
}

func (r *memoryPlanRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrStudyTaskNotFound
}

func (r *memoryPlanRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = nil
	return nil
}
