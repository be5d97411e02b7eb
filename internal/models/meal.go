package models

import "time"

// Meal represents a diet-log entry owned by a single user
type Meal struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Datetime    time.Time `json:"datetime" db:"datetime"`
	IsInDiet    bool      `json:"isInDiet" db:"is_in_diet"`
	UserID      int64     `json:"user_id" db:"user_id"`
}
