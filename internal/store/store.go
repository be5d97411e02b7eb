// Package store contains the persistence layer: one interface per aggregate
// plus Postgres implementations backed by a pgx pool. Handlers depend on the
// interfaces only, so tests can swap in fakes.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"DAILYDIET_BACK-END/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a uniqueness constraint is violated
	ErrDuplicate = errors.New("record already exists")
)

// UserStore persists accounts
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// MealStore persists meals
type MealStore interface {
	Create(ctx context.Context, meal *models.Meal) (*models.Meal, error)
	GetByID(ctx context.Context, id int64) (*models.Meal, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Meal, error)
	Update(ctx context.Context, meal *models.Meal) error
	Delete(ctx context.Context, id int64) error
}

// SessionStore persists login sessions
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
