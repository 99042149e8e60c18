// Package migrations applies the relational schema at startup. Statements are
// ordered and idempotent; Apply runs them one by one on the provided handle.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// Statements is the ordered DDL for the application schema.
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS time_audit_entries (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		activity_date DATE NOT NULL,
		start_time VARCHAR(5) NOT NULL,
		end_time VARCHAR(5) NOT NULL,
		description TEXT NOT NULL,
		energy_level VARCHAR(10) NOT NULL,
		dollar_value INT NOT NULL,
		category VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS power_goals (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		target_month INT,
		target_year INT,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		goal_id BIGINT NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'not_started',
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS next_actions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		project_id BIGINT NOT NULL,
		description TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pomodoro_sessions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		duration INT NOT NULL,
		task_description TEXT,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS north_star_metrics (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		metric_name VARCHAR(255) NOT NULL,
		unit VARCHAR(50) NOT NULL,
		target_value NUMERIC(10,2) NOT NULL,
		current_value NUMERIC(10,2) NOT NULL,
		recorded_date DATE NOT NULL,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scorecard_metrics (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		metric_name VARCHAR(255) NOT NULL,
		category VARCHAR(100),
		unit VARCHAR(50),
		target_value NUMERIC(10,2),
		current_value NUMERIC(10,2) NOT NULL,
		recorded_date DATE NOT NULL,
		status VARCHAR(10),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accountability_partners (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		partner_name VARCHAR(255) NOT NULL,
		partner_email VARCHAR(320),
		partner_phone VARCHAR(50),
		relationship VARCHAR(100),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS commitments (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		partner_id BIGINT,
		goal_id BIGINT,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		deadline DATE,
		stakes TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS check_ins (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		partner_id BIGINT,
		commitment_id BIGINT,
		scheduled_date DATE NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TIMESTAMPTZ,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS relationships (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		contact_name VARCHAR(255) NOT NULL,
		relationship VARCHAR(100),
		energy_impact VARCHAR(10) NOT NULL,
		notes TEXT,
		boundary_set BOOLEAN NOT NULL DEFAULT FALSE,
		last_interaction DATE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS daily_plans (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		plan_date DATE NOT NULL,
		first_90_min_task TEXT,
		key_tasks TEXT,
		notes TEXT,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS goal_reviews (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		review_date DATE NOT NULL,
		review_time VARCHAR(10) NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ai_insights (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		insight_type VARCHAR(100) NOT NULL,
		title VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		category VARCHAR(100),
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS voice_recordings (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		audio_url TEXT NOT NULL,
		audio_key VARCHAR(500) NOT NULL,
		transcription TEXT,
		recording_type VARCHAR(50),
		processed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_audit_user_date ON time_audit_entries (user_id, activity_date)`,
	`CREATE INDEX IF NOT EXISTS idx_scorecard_user_date ON scorecard_metrics (user_id, recorded_date)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_plans_user_date ON daily_plans (user_id, plan_date)`,
}

// Apply executes all schema statements in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range Statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
