package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/timeaudit"
)

// --- TimeAuditStore ---------------------------------------------------------

const timeAuditColumns = `id, user_id, activity_date, start_time, end_time, description, energy_level, dollar_value, category, created_at, updated_at`

func (s *Store) CreateEntry(ctx context.Context, e timeaudit.Entry) (timeaudit.Entry, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return timeaudit.Entry{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO time_audit_entries (user_id, activity_date, start_time, end_time, description, energy_level, dollar_value, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, e.UserID, e.ActivityDate, e.StartTime, e.EndTime, e.Description, e.EnergyLevel, e.DollarValue, nullStr(e.Category), now, now).Scan(&id)
	if err != nil {
		return timeaudit.Entry{}, err
	}

	return s.getEntry(ctx, db, id)
}

// getEntry re-fetches a row so returned defaults are authoritative.
func (s *Store) getEntry(ctx context.Context, db *sql.DB, id int64) (timeaudit.Entry, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+timeAuditColumns+`
		FROM time_audit_entries
		WHERE id = $1
	`, id)
	return scanEntry(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (timeaudit.Entry, error) {
	var (
		e        timeaudit.Entry
		category sql.NullString
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.ActivityDate, &e.StartTime, &e.EndTime, &e.Description, &e.EnergyLevel, &e.DollarValue, &category, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return timeaudit.Entry{}, err
	}
	e.Category = category.String
	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, userID int64, start, end *time.Time) ([]timeaudit.Entry, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []timeaudit.Entry{}, nil
	}

	query := `
		SELECT ` + timeAuditColumns + `
		FROM time_audit_entries
		WHERE user_id = $1
		ORDER BY activity_date DESC, id`
	args := []any{userID}
	if start != nil && end != nil {
		query = `
		SELECT ` + timeAuditColumns + `
		FROM time_audit_entries
		WHERE user_id = $1 AND activity_date >= $2 AND activity_date <= $3
		ORDER BY activity_date DESC, id`
		args = append(args, *start, *end)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]timeaudit.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (s *Store) UpdateEntry(ctx context.Context, id, userID int64, patch timeaudit.EntryPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.ActivityDate != nil {
		b.set("activity_date", *patch.ActivityDate)
	}
	if patch.StartTime != nil {
		b.set("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		b.set("end_time", *patch.EndTime)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.EnergyLevel != nil {
		b.set("energy_level", *patch.EnergyLevel)
	}
	if patch.DollarValue != nil {
		b.set("dollar_value", *patch.DollarValue)
	}
	if patch.Category != nil {
		b.set("category", nullStr(*patch.Category))
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("time_audit_entries", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) DeleteEntry(ctx context.Context, id, userID int64) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		DELETE FROM time_audit_entries WHERE id = $1 AND user_id = $2
	`, id, userID)
	return err
}
