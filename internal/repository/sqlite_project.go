package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mindmapdigital/projectflow/internal/db"
	"github.com/mindmapdigital/projectflow/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database. The
// document collections are stored as one JSON column; the name and
// timestamps are mirrored into plain columns for listing and ordering.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(dbtx db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: dbtx}
}

func (r *SQLiteProjectRepo) Upsert(ctx context.Context, userID string, p *domain.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding project document: %w", err)
	}
	query := `INSERT INTO projects (id, user_id, name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document = excluded.document,
			updated_at = excluded.updated_at
		WHERE projects.user_id = excluded.user_id`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		userID,
		p.Name,
		string(doc),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, userID, id string) (*domain.Project, error) {
	query := `SELECT document FROM projects WHERE id = ? AND user_id = ?`
	var doc string
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	return decodeProject(doc)
}

func (r *SQLiteProjectRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Project, error) {
	query := `SELECT document FROM projects WHERE user_id = ? ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		p, err := decodeProject(doc)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeProject(doc string) (*domain.Project, error) {
	var p domain.Project
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decoding project document: %w", err)
	}
	return &p, nil
}
