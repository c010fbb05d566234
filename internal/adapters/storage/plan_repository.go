package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/focus-cli/internal/domain"
	"github.com/xvierd/focus-cli/internal/ports"
)

const (
	studyTaskColumns = `id, title, description, date, subject, chapter, priority, time_slot, completed`
	// planDateLayout keeps timetable days independent of the time zone.
	planDateLayout = "2006-01-02"
)

// planRepository implements ports.StudyPlanRepository using SQLite.
type planRepository struct {
	db *sql.DB
}

// newPlanRepository creates a new timetable repository.
func newPlanRepository(db *sql.DB) ports.StudyPlanRepository {
	return &planRepository{db: db}
}

// Add appends tasks in one transaction.
func (r *planRepository) Add(ctx context.Context, tasks []domain.StudyTask) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO study_tasks (` + studyTaskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, t := range tasks {
		_, err := tx.ExecContext(ctx, query,
			t.ID,
			t.Title,
			t.Description,
			t.Date.Format(planDateLayout),
			t.Subject,
			t.Chapter,
			t.Priority,
			t.TimeSlot,
			t.Completed,
		)
		if err != nil {
			return fmt.Errorf("failed to save study task %q: %w", t.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit study tasks: %w", err)
	}
	return nil
}

// FindAll returns the timetable ordered by day, then by insertion.
func (r *planRepository) FindAll(ctx context.Context) ([]domain.StudyTask, error) {
	query := `SELECT ` + studyTaskColumns + ` FROM study_tasks ORDER BY date ASC, seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query study tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.StudyTask
	for rows.Next() {
		var t domain.StudyTask
		var date string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &date, &t.Subject, &t.Chapter, &t.Priority, &t.TimeSlot, &t.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan study task: %w", err)
		}
		t.Date, err = time.ParseInLocation(planDateLayout, date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q for study task %s: %w", date, t.ID, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate study tasks: %w", err)
	}
	return tasks, nil
}

// SetCompleted marks a task done or not done.
func (r *planRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE study_tasks SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return fmt.Errorf("failed to update study task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrStudyTaskNotFound
	}
	return nil
}

// Delete removes a task from the timetable.
func (r *planRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM study_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete study task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrStudyTaskNotFound
	}
	return nil
}

// Clear empties the timetable.
func (r *planRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM study_tasks`); err != nil {
		return fmt.Errorf("failed to clear study tasks: %w", err)
	}
	return nil
}
