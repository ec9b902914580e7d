package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order on every open. Statements are written to
// be re-runnable (CREATE TABLE IF NOT EXISTS).
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                  TEXT PRIMARY KEY,
		external_id         TEXT NOT NULL UNIQUE,
		email               TEXT NOT NULL DEFAULT '',
		subscription_id     TEXT NOT NULL DEFAULT '',
		subscription_status TEXT NOT NULL DEFAULT 'inactive'
		                    CHECK(subscription_status IN ('active','trialing','inactive','cancelled')),
		subscription_plan   TEXT NOT NULL DEFAULT '',
		subscription_start  TEXT,
		subscription_end    TEXT,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_subscription_id ON users(subscription_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		document   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_user_updated ON projects(user_id, updated_at DESC)`,

	`CREATE TABLE IF NOT EXISTS ai_usage (
		user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		month_year        TEXT NOT NULL,
		generations_count INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, month_year)
	)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
