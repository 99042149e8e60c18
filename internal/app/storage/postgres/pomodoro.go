package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/pomodoro"
)

// --- PomodoroStore ----------------------------------------------------------

const pomodoroColumns = `id, user_id, started_at, completed_at, duration, task_description, completed, created_at, updated_at`

func (s *Store) CreateSession(ctx context.Context, sess pomodoro.Session) (pomodoro.Session, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return pomodoro.Session{}, err
	}

	if sess.Duration == 0 {
		sess.Duration = pomodoro.DefaultDurationSeconds
	}
	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO pomodoro_sessions (user_id, started_at, completed_at, duration, task_description, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, sess.UserID, sess.StartedAt, nullTimePtr(sess.CompletedAt), sess.Duration, nullStr(sess.TaskDescription), sess.Completed, now, now).Scan(&id)
	if err != nil {
		return pomodoro.Session{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+pomodoroColumns+`
		FROM pomodoro_sessions
		WHERE id = $1
	`, id)
	return scanSession(row)
}

func scanSession(row rowScanner) (pomodoro.Session, error) {
	var (
		sess        pomodoro.Session
		completedAt sql.NullTime
		task        sql.NullString
	)
	if err := row.Scan(&sess.ID, &sess.UserID, &sess.StartedAt, &completedAt, &sess.Duration, &task, &sess.Completed, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
		return pomodoro.Session{}, err
	}
	sess.CompletedAt = timePtr(completedAt)
	sess.TaskDescription = task.String
	return sess, nil
}

func (s *Store) ListSessions(ctx context.Context, userID int64, start, end *time.Time) ([]pomodoro.Session, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []pomodoro.Session{}, nil
	}

	query := `
		SELECT ` + pomodoroColumns + `
		FROM pomodoro_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC, id`
	args := []any{userID}
	if start != nil && end != nil {
		query = `
		SELECT ` + pomodoroColumns + `
		FROM pomodoro_sessions
		WHERE user_id = $1 AND started_at >= $2 AND started_at <= $3
		ORDER BY started_at DESC, id`
		args = append(args, *start, *end)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]pomodoro.Session, 0)
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sess)
	}
	return result, rows.Err()
}

func (s *Store) UpdateSession(ctx context.Context, id, userID int64, patch pomodoro.SessionPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.CompletedAt != nil {
		b.set("completed_at", *patch.CompletedAt)
	}
	if patch.Duration != nil {
		b.set("duration", *patch.Duration)
	}
	if patch.TaskDescription != nil {
		b.set("task_description", nullStr(*patch.TaskDescription))
	}
	if patch.Completed != nil {
		b.set("completed", *patch.Completed)
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("pomodoro_sessions", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}
