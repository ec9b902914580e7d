package repository

import (
	"context"
	"errors"

	"github.com/mindmapdigital/projectflow/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ProjectRepo persists full project documents, scoped to their owning user.
// The document is stored whole: every save is an upsert of the entire
// serialized Project, last write wins.
type ProjectRepo interface {
	Upsert(ctx context.Context, userID string, p *domain.Project) error
	GetByID(ctx context.Context, userID, id string) (*domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Project, error)
	Delete(ctx context.Context, userID, id string) error
}

// UserRepo persists identity-linked account records with their billing state.
type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

// UsageRepo tracks per-user monthly AI generation counts.
//
// There is deliberately no atomic increment: the generation path reads the
// count and writes count+1 as two separate calls, mirroring the hosted
// database's row-level access pattern.
type UsageRepo interface {
	// GetCount returns the generation count for the month, zero when no row
	// exists yet.
	GetCount(ctx context.Context, userID, monthYear string) (int, error)
	// SetCount upserts the generation count for the month.
	SetCount(ctx context.Context, userID, monthYear string, count int) error
}
