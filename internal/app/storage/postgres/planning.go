package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/planning"
)

// --- PlanningStore ----------------------------------------------------------

const dailyPlanColumns = `id, user_id, plan_date, first_90_min_task, key_tasks, notes, completed, created_at, updated_at`

func (s *Store) CreateDailyPlan(ctx context.Context, p planning.DailyPlan) (planning.DailyPlan, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return planning.DailyPlan{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO daily_plans (user_id, plan_date, first_90_min_task, key_tasks, notes, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.UserID, p.PlanDate, nullStr(p.First90MinTask), nullStr(p.KeyTasks), nullStr(p.Notes), p.Completed, now, now).Scan(&id)
	if err != nil {
		return planning.DailyPlan{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+dailyPlanColumns+`
		FROM daily_plans
		WHERE id = $1
	`, id)
	return scanDailyPlan(row)
}

func scanDailyPlan(row rowScanner) (planning.DailyPlan, error) {
	var (
		p        planning.DailyPlan
		first90  sql.NullString
		keyTasks sql.NullString
		notes    sql.NullString
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.PlanDate, &first90, &keyTasks, &notes, &p.Completed, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return planning.DailyPlan{}, err
	}
	p.First90MinTask = first90.String
	p.KeyTasks = keyTasks.String
	p.Notes = notes.String
	return p, nil
}

func (s *Store) GetDailyPlanByDate(ctx context.Context, userID int64, date time.Time) (*planning.DailyPlan, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return nil, nil
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+dailyPlanColumns+`
		FROM daily_plans
		WHERE user_id = $1 AND plan_date = $2
		ORDER BY id
		LIMIT 1
	`, userID, date)

	p, err := scanDailyPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateDailyPlan(ctx context.Context, id, userID int64, patch planning.DailyPlanPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.PlanDate != nil {
		b.set("plan_date", *patch.PlanDate)
	}
	if patch.First90MinTask != nil {
		b.set("first_90_min_task", nullStr(*patch.First90MinTask))
	}
	if patch.KeyTasks != nil {
		b.set("key_tasks", nullStr(*patch.KeyTasks))
	}
	if patch.Notes != nil {
		b.set("notes", nullStr(*patch.Notes))
	}
	if patch.Completed != nil {
		b.set("completed", *patch.Completed)
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("daily_plans", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

const goalReviewColumns = `id, user_id, review_date, review_time, completed, completed_at, created_at, updated_at`

func (s *Store) CreateGoalReview(ctx context.Context, r planning.GoalReview) (planning.GoalReview, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return planning.GoalReview{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO goal_reviews (user_id, review_date, review_time, completed, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, r.UserID, r.ReviewDate, r.ReviewTime, r.Completed, nullTimePtr(r.CompletedAt), now, now).Scan(&id)
	if err != nil {
		return planning.GoalReview{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+goalReviewColumns+`
		FROM goal_reviews
		WHERE id = $1
	`, id)
	return scanGoalReview(row)
}

func scanGoalReview(row rowScanner) (planning.GoalReview, error) {
	var (
		r           planning.GoalReview
		completedAt sql.NullTime
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.ReviewDate, &r.ReviewTime, &r.Completed, &completedAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return planning.GoalReview{}, err
	}
	r.CompletedAt = timePtr(completedAt)
	return r, nil
}

func (s *Store) ListGoalReviewsByDate(ctx context.Context, userID int64, date time.Time) ([]planning.GoalReview, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []planning.GoalReview{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+goalReviewColumns+`
		FROM goal_reviews
		WHERE user_id = $1 AND review_date = $2
		ORDER BY id
	`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]planning.GoalReview, 0)
	for rows.Next() {
		r, err := scanGoalReview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *Store) UpdateGoalReview(ctx context.Context, id, userID int64, patch planning.GoalReviewPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.ReviewDate != nil {
		b.set("review_date", *patch.ReviewDate)
	}
	if patch.ReviewTime != nil {
		b.set("review_time", *patch.ReviewTime)
	}
	if patch.Completed != nil {
		b.set("completed", *patch.Completed)
	}
	if patch.CompletedAt != nil {
		b.set("completed_at", *patch.CompletedAt)
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("goal_reviews", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}
