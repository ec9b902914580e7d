package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mindmapdigital/projectflow/internal/db"
	"github.com/mindmapdigital/projectflow/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(dbtx db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: dbtx}
}

const userColumns = `id, external_id, email, subscription_id, subscription_status,
	subscription_plan, subscription_start, subscription_end, created_at, updated_at`

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.ExternalID,
		u.Email,
		u.SubscriptionID,
		string(u.SubscriptionStatus),
		u.SubscriptionPlan,
		optionalTimeArg(u.SubscriptionStart),
		optionalTimeArg(u.SubscriptionEnd),
		u.CreatedAt.Format(time.RFC3339),
		u.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE external_id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, externalID))
}

func (r *SQLiteUserRepo) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE subscription_id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, subscriptionID))
}

func (r *SQLiteUserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email = ?, subscription_id = ?, subscription_status = ?,
		subscription_plan = ?, subscription_start = ?, subscription_end = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		u.Email,
		u.SubscriptionID,
		string(u.SubscriptionStatus),
		u.SubscriptionPlan,
		optionalTimeArg(u.SubscriptionStart),
		optionalTimeArg(u.SubscriptionEnd),
		u.UpdatedAt.Format(time.RFC3339),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var status string
	var start, end sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&u.ID,
		&u.ExternalID,
		&u.Email,
		&u.SubscriptionID,
		&status,
		&u.SubscriptionPlan,
		&start,
		&end,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.SubscriptionStatus = domain.SubscriptionStatus(status)
	u.SubscriptionStart = optionalTime(start)
	u.SubscriptionEnd = optionalTime(end)
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &u, nil
}
