package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mindmapdigital/projectflow/internal/db"
)

// SQLiteUsageRepo implements UsageRepo using a SQLite database.
type SQLiteUsageRepo struct {
	db db.DBTX
}

// NewSQLiteUsageRepo creates a new SQLiteUsageRepo.
func NewSQLiteUsageRepo(dbtx db.DBTX) *SQLiteUsageRepo {
	return &SQLiteUsageRepo{db: dbtx}
}

func (r *SQLiteUsageRepo) GetCount(ctx context.Context, userID, monthYear string) (int, error) {
	query := `SELECT generations_count FROM ai_usage WHERE user_id = ? AND month_year = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, userID, monthYear).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("loading usage count: %w", err)
	}
	return count, nil
}

func (r *SQLiteUsageRepo) SetCount(ctx context.Context, userID, monthYear string, count int) error {
	query := `INSERT INTO ai_usage (user_id, month_year, generations_count)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, month_year) DO UPDATE SET generations_count = excluded.generations_count`
	if _, err := r.db.ExecContext(ctx, query, userID, monthYear, count); err != nil {
		return fmt.Errorf("upserting usage count: %w", err)
	}
	return nil
}
