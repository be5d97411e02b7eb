package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"DAILYDIET_BACK-END/internal/models"
)

// PostgresSessionStore implements SessionStore on a pgx pool
type PostgresSessionStore struct {
	db *pgxpool.Pool
}

// NewPostgresSessionStore creates a new PostgresSessionStore
func NewPostgresSessionStore(db *pgxpool.Pool) *PostgresSessionStore {
	return &PostgresSessionStore{db: db}
}

// Create inserts a session row
func (s *PostgresSessionStore) Create(ctx context.Context, session *models.Session) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)`,
		session.ID, session.UserID, session.ExpiresAt, session.CreatedAt)
	return err
}

// Get loads a live session by id. Expired rows count as not found.
func (s *PostgresSessionStore) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var sess models.Session
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, expires_at, created_at
		   FROM sessions
		  WHERE id = $1 AND expires_at > NOW()`,
		id).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// Delete revokes a session
func (s *PostgresSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
