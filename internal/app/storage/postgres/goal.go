package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/goal"
)

// --- GoalStore --------------------------------------------------------------

const powerGoalColumns = `id, user_id, title, description, target_month, target_year, status, completed_at, created_at, updated_at`

func (s *Store) CreatePowerGoal(ctx context.Context, g goal.PowerGoal) (goal.PowerGoal, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return goal.PowerGoal{}, err
	}

	if g.Status == "" {
		g.Status = goal.StatusActive
	}
	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO power_goals (user_id, title, description, target_month, target_year, status, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, g.UserID, g.Title, nullStr(g.Description), nullInt(g.TargetMonth), nullInt(g.TargetYear), g.Status, nullTimePtr(g.CompletedAt), now, now).Scan(&id)
	if err != nil {
		return goal.PowerGoal{}, err
	}

	return s.getPowerGoal(ctx, db, id)
}

func (s *Store) getPowerGoal(ctx context.Context, db *sql.DB, id int64) (goal.PowerGoal, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+powerGoalColumns+`
		FROM power_goals
		WHERE id = $1
	`, id)
	return scanPowerGoal(row)
}

func scanPowerGoal(row rowScanner) (goal.PowerGoal, error) {
	var (
		g           goal.PowerGoal
		description sql.NullString
		targetMonth sql.NullInt64
		targetYear  sql.NullInt64
		completedAt sql.NullTime
	)
	if err := row.Scan(&g.ID, &g.UserID, &g.Title, &description, &targetMonth, &targetYear, &g.Status, &completedAt, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return goal.PowerGoal{}, err
	}
	g.Description = description.String
	g.TargetMonth = int(targetMonth.Int64)
	g.TargetYear = int(targetYear.Int64)
	g.CompletedAt = timePtr(completedAt)
	return g, nil
}

func (s *Store) ListPowerGoals(ctx context.Context, userID int64) ([]goal.PowerGoal, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []goal.PowerGoal{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+powerGoalColumns+`
		FROM power_goals
		WHERE user_id = $1
		ORDER BY target_month, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]goal.PowerGoal, 0)
	for rows.Next() {
		g, err := scanPowerGoal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (s *Store) UpdatePowerGoal(ctx context.Context, id, userID int64, patch goal.PowerGoalPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.set("description", nullStr(*patch.Description))
	}
	if patch.TargetMonth != nil {
		b.set("target_month", nullInt(*patch.TargetMonth))
	}
	if patch.TargetYear != nil {
		b.set("target_year", nullInt(*patch.TargetYear))
	}
	if patch.Status != nil {
		b.set("status", *patch.Status)
	}
	if patch.CompletedAt != nil {
		b.set("completed_at", *patch.CompletedAt)
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("power_goals", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) DeletePowerGoal(ctx context.Context, id, userID int64) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		DELETE FROM power_goals WHERE id = $1 AND user_id = $2
	`, id, userID)
	return err
}

const projectColumns = `id, user_id, goal_id, title, description, status, completed_at, created_at, updated_at`

func (s *Store) CreateProject(ctx context.Context, p goal.Project) (goal.Project, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return goal.Project{}, err
	}

	if p.Status == "" {
		p.Status = goal.ProjectNotStarted
	}
	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO projects (user_id, goal_id, title, description, status, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.UserID, p.GoalID, p.Title, nullStr(p.Description), p.Status, nullTimePtr(p.CompletedAt), now, now).Scan(&id)
	if err != nil {
		return goal.Project{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1
	`, id)
	return scanProject(row)
}

func scanProject(row rowScanner) (goal.Project, error) {
	var (
		p           goal.Project
		description sql.NullString
		completedAt sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.GoalID, &p.Title, &description, &p.Status, &completedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return goal.Project{}, err
	}
	p.Description = description.String
	p.CompletedAt = timePtr(completedAt)
	return p, nil
}

func (s *Store) ListProjectsByGoal(ctx context.Context, goalID, userID int64) ([]goal.Project, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []goal.Project{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE goal_id = $1 AND user_id = $2
		ORDER BY id
	`, goalID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]goal.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *Store) UpdateProject(ctx context.Context, id, userID int64, patch goal.ProjectPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.GoalID != nil {
		b.set("goal_id", *patch.GoalID)
	}
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.set("description", nullStr(*patch.Description))
	}
	if patch.Status != nil {
		b.set("status", *patch.Status)
	}
	if patch.CompletedAt != nil {
		b.set("completed_at", *patch.CompletedAt)
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("projects", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) DeleteProject(ctx context.Context, id, userID int64) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		DELETE FROM projects WHERE id = $1 AND user_id = $2
	`, id, userID)
	return err
}

const nextActionColumns = `id, user_id, project_id, description, completed, completed_at, created_at, updated_at`

func (s *Store) CreateNextAction(ctx context.Context, a goal.NextAction) (goal.NextAction, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return goal.NextAction{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO next_actions (user_id, project_id, description, completed, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, a.UserID, a.ProjectID, a.Description, a.Completed, nullTimePtr(a.CompletedAt), now, now).Scan(&id)
	if err != nil {
		return goal.NextAction{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+nextActionColumns+`
		FROM next_actions
		WHERE id = $1
	`, id)
	return scanNextAction(row)
}

func scanNextAction(row rowScanner) (goal.NextAction, error) {
	var (
		a           goal.NextAction
		completedAt sql.NullTime
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.ProjectID, &a.Description, &a.Completed, &completedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return goal.NextAction{}, err
	}
	a.CompletedAt = timePtr(completedAt)
	return a, nil
}

func (s *Store) ListNextActionsByProject(ctx context.Context, projectID, userID int64) ([]goal.NextAction, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []goal.NextAction{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+nextActionColumns+`
		FROM next_actions
		WHERE project_id = $1 AND user_id = $2
		ORDER BY id
	`, projectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]goal.NextAction, 0)
	for rows.Next() {
		a, err := scanNextAction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (s *Store) UpdateNextAction(ctx context.Context, id, userID int64, patch goal.NextActionPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.ProjectID != nil {
		b.set("project_id", *patch.ProjectID)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
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

	query, args := b.where("next_actions", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) DeleteNextAction(ctx context.Context, id, userID int64) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		DELETE FROM next_actions WHERE id = $1 AND user_id = $2
	`, id, userID)
	return err
}
