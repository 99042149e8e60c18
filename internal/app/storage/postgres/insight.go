package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/insight"
)

// --- InsightStore -----------------------------------------------------------

const insightColumns = `id, user_id, insight_type, title, content, category, read, created_at, updated_at`

func (s *Store) CreateInsight(ctx context.Context, in insight.Insight) (insight.Insight, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return insight.Insight{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO ai_insights (user_id, insight_type, title, content, category, read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, in.UserID, in.Type, in.Title, in.Content, nullStr(in.Category), in.Read, now, now).Scan(&id)
	if err != nil {
		return insight.Insight{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+insightColumns+`
		FROM ai_insights
		WHERE id = $1
	`, id)
	return scanInsight(row)
}

func scanInsight(row rowScanner) (insight.Insight, error) {
	var (
		in       insight.Insight
		category sql.NullString
	)
	if err := row.Scan(&in.ID, &in.UserID, &in.Type, &in.Title, &in.Content, &category, &in.Read, &in.CreatedAt, &in.UpdatedAt); err != nil {
		return insight.Insight{}, err
	}
	in.Category = category.String
	return in, nil
}

func (s *Store) ListInsights(ctx context.Context, userID int64, unreadOnly bool) ([]insight.Insight, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []insight.Insight{}, nil
	}

	query := `
		SELECT ` + insightColumns + `
		FROM ai_insights
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	if unreadOnly {
		query = `
		SELECT ` + insightColumns + `
		FROM ai_insights
		WHERE user_id = $1 AND read = FALSE
		ORDER BY created_at DESC, id DESC`
	}

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]insight.Insight, 0)
	for rows.Next() {
		in, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, in)
	}
	return result, rows.Err()
}

func (s *Store) MarkInsightRead(ctx context.Context, id, userID int64) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		UPDATE ai_insights
		SET read = TRUE, updated_at = $3
		WHERE id = $1 AND user_id = $2
	`, id, userID, time.Now().UTC())
	return err
}
