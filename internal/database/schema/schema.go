// Package schema bootstraps the database objects the application depends on.
// Statements are idempotent so startup is safe to repeat.
package schema

import (
	"context"
	"fmt"

	"open-inn/internal/database"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		user_role TEXT NOT NULL,
		profile_completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS freelancer_profiles (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		skills TEXT[] NOT NULL DEFAULT '{}',
		years_experience INT NOT NULL DEFAULT 0,
		hourly_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		portfolio_url TEXT NOT NULL DEFAULT '',
		github_url TEXT NOT NULL DEFAULT '',
		linkedin_url TEXT NOT NULL DEFAULT '',
		availability TEXT NOT NULL DEFAULT 'full-time',
		looking_for TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		required_skills TEXT[] NOT NULL DEFAULT '{}',
		tech_stack TEXT[] NOT NULL DEFAULT '{}',
		budget_min DOUBLE PRECISION,
		budget_max DOUBLE PRECISION,
		timeline TEXT NOT NULL DEFAULT '',
		project_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS matches (
		id UUID PRIMARY KEY,
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		freelancer_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		match_score INT NOT NULL CHECK (match_score BETWEEN 0 AND 100),
		match_reason TEXT NOT NULL,
		match_type TEXT NOT NULL CHECK (match_type IN ('ai_generated', 'rule_based_fallback')),
		skills_matched TEXT[] NOT NULL DEFAULT '{}',
		is_viewed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (project_id, freelancer_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_matches_project_score ON matches (project_id, match_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_freelancer_score ON matches (freelancer_id, match_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects (status)`,
	`CREATE INDEX IF NOT EXISTS idx_users_role ON users (user_role)`,
}

func Ensure(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
