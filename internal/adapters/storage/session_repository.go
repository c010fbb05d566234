package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/focus-cli/internal/domain"
	"github.com/xvierd/focus-cli/internal/ports"
)

const sessionColumns = `id, completed_at, duration_minutes, completed, distraction_count`

// sessionRepository implements ports.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Append persists a session to storage.
func (r *sessionRepository) Append(ctx context.Context, session *domain.FocusSession) error {
	query := `
		INSERT INTO focus_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.CompletedAt.UTC(),
		session.DurationMinutes,
		session.Completed,
		session.DistractionCount,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateSession
		}
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// FindByID retrieves a session by its unique identifier.
func (r *sessionRepository) FindByID(ctx context.Context, id string) (*domain.FocusSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM focus_sessions WHERE id = ?`

	session, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

// FindAll returns every archived session, oldest first.
func (r *sessionRepository) FindAll(ctx context.Context) ([]*domain.FocusSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM focus_sessions ORDER BY completed_at ASC, seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSessions(rows)
}

// FindSince returns sessions completed at or after since, oldest first.
func (r *sessionRepository) FindSince(ctx context.Context, since time.Time) ([]*domain.FocusSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM focus_sessions
		WHERE completed_at >= ?
		ORDER BY completed_at ASC, seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSessions(rows)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.FocusSession, error) {
	var s domain.FocusSession
	if err := row.Scan(&s.ID, &s.CompletedAt, &s.DurationMinutes, &s.Completed, &s.DistractionCount); err != nil {
		return nil, err
	}
	s.CompletedAt = s.CompletedAt.Local()
	return &s, nil
}

func scanSessions(rows *sql.Rows) ([]*domain.FocusSession, error) {
	var sessions []*domain.FocusSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
