package models

import (
	"time"

	"github.com/google/uuid"
)

// Session stores a login session so logout can revoke it server-side
type Session struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
