package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/metric"
)

// --- MetricStore ------------------------------------------------------------

const northStarColumns = `id, user_id, metric_name, unit, target_value, current_value, recorded_date, notes, created_at, updated_at`

func (s *Store) CreateNorthStar(ctx context.Context, m metric.NorthStar) (metric.NorthStar, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return metric.NorthStar{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO north_star_metrics (user_id, metric_name, unit, target_value, current_value, recorded_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, m.UserID, m.MetricName, m.Unit, m.TargetValue, m.CurrentValue, m.RecordedDate, nullStr(m.Notes), now, now).Scan(&id)
	if err != nil {
		return metric.NorthStar{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+northStarColumns+`
		FROM north_star_metrics
		WHERE id = $1
	`, id)
	return scanNorthStar(row)
}

func scanNorthStar(row rowScanner) (metric.NorthStar, error) {
	var (
		m     metric.NorthStar
		notes sql.NullString
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.MetricName, &m.Unit, &m.TargetValue, &m.CurrentValue, &m.RecordedDate, &notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return metric.NorthStar{}, err
	}
	m.Notes = notes.String
	return m, nil
}

func (s *Store) ListNorthStars(ctx context.Context, userID int64, metricName string) ([]metric.NorthStar, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []metric.NorthStar{}, nil
	}

	query := `
		SELECT ` + northStarColumns + `
		FROM north_star_metrics
		WHERE user_id = $1
		ORDER BY recorded_date DESC, id`
	args := []any{userID}
	if metricName != "" {
		query = `
		SELECT ` + northStarColumns + `
		FROM north_star_metrics
		WHERE user_id = $1 AND metric_name = $2
		ORDER BY recorded_date DESC, id`
		args = append(args, metricName)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]metric.NorthStar, 0)
	for rows.Next() {
		m, err := scanNorthStar(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

const scorecardColumns = `id, user_id, metric_name, category, unit, target_value, current_value, recorded_date, status, notes, created_at, updated_at`

func (s *Store) CreateScorecard(ctx context.Context, m metric.Scorecard) (metric.Scorecard, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return metric.Scorecard{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO scorecard_metrics (user_id, metric_name, category, unit, target_value, current_value, recorded_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, m.UserID, m.MetricName, nullStr(m.Category), nullStr(m.Unit), nullFloatPtr(m.TargetValue), m.CurrentValue, m.RecordedDate, nullStr(string(m.Status)), nullStr(m.Notes), now, now).Scan(&id)
	if err != nil {
		return metric.Scorecard{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+scorecardColumns+`
		FROM scorecard_metrics
		WHERE id = $1
	`, id)
	return scanScorecard(row)
}

func scanScorecard(row rowScanner) (metric.Scorecard, error) {
	var (
		m           metric.Scorecard
		category    sql.NullString
		unit        sql.NullString
		targetValue sql.NullFloat64
		status      sql.NullString
		notes       sql.NullString
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.MetricName, &category, &unit, &targetValue, &m.CurrentValue, &m.RecordedDate, &status, &notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return metric.Scorecard{}, err
	}
	m.Category = category.String
	m.Unit = unit.String
	m.TargetValue = floatPtr(targetValue)
	m.Status = metric.ScorecardStatus(status.String)
	m.Notes = notes.String
	return m, nil
}

func (s *Store) ListScorecards(ctx context.Context, userID int64, start, end *time.Time) ([]metric.Scorecard, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []metric.Scorecard{}, nil
	}

	query := `
		SELECT ` + scorecardColumns + `
		FROM scorecard_metrics
		WHERE user_id = $1
		ORDER BY recorded_date DESC, id`
	args := []any{userID}
	if start != nil && end != nil {
		query = `
		SELECT ` + scorecardColumns + `
		FROM scorecard_metrics
		WHERE user_id = $1 AND recorded_date >= $2 AND recorded_date <= $3
		ORDER BY recorded_date DESC, id`
		args = append(args, *start, *end)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]metric.Scorecard, 0)
	for rows.Next() {
		m, err := scanScorecard(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// UpdateScorecard matches on id alone; the contract carries no user scope for
// this kind.
func (s *Store) UpdateScorecard(ctx context.Context, id int64, patch metric.ScorecardPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.MetricName != nil {
		b.set("metric_name", *patch.MetricName)
	}
	if patch.Category != nil {
		b.set("category", nullStr(*patch.Category))
	}
	if patch.Unit != nil {
		b.set("unit", nullStr(*patch.Unit))
	}
	if patch.TargetValue != nil {
		b.set("target_value", *patch.TargetValue)
	}
	if patch.CurrentValue != nil {
		b.set("current_value", *patch.CurrentValue)
	}
	if patch.RecordedDate != nil {
		b.set("recorded_date", *patch.RecordedDate)
	}
	if patch.Status != nil {
		b.set("status", nullStr(string(*patch.Status)))
	}
	if patch.Notes != nil {
		b.set("notes", nullStr(*patch.Notes))
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("scorecard_metrics", "id = $%d", id)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

// DeleteScorecard matches on id alone, like UpdateScorecard.
func (s *Store) DeleteScorecard(ctx context.Context, id int64) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		DELETE FROM scorecard_metrics WHERE id = $1
	`, id)
	return err
}
