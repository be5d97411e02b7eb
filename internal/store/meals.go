package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"DAILYDIET_BACK-END/internal/models"
)

// PostgresMealStore implements MealStore on a pgx pool
type PostgresMealStore struct {
	db *pgxpool.Pool
}

// NewPostgresMealStore creates a new PostgresMealStore
func NewPostgresMealStore(db *pgxpool.Pool) *PostgresMealStore {
	return &PostgresMealStore{db: db}
}

// Create inserts a meal and returns it with the assigned id
func (s *PostgresMealStore) Create(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	err := s.db.QueryRow(ctx,
		`INSERT INTO meals (name, description, datetime, is_in_diet, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		meal.Name, meal.Description, meal.Datetime, meal.IsInDiet, meal.UserID).Scan(&meal.ID)
	if err != nil {
		return nil, err
	}
	return meal, nil
}

// GetByID loads a meal by id
func (s *PostgresMealStore) GetByID(ctx context.Context, id int64) (*models.Meal, error) {
	var m models.Meal
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, datetime, is_in_diet, user_id FROM meals WHERE id = $1`,
		id).Scan(&m.ID, &m.Name, &m.Description, &m.Datetime, &m.IsInDiet, &m.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByUser returns all meals owned by userID in insertion order
func (s *PostgresMealStore) ListByUser(ctx context.Context, userID int64) ([]models.Meal, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, datetime, is_in_diet, user_id
		   FROM meals
		  WHERE user_id = $1
		  ORDER BY id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := make([]models.Meal, 0)
	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Datetime, &m.IsInDiet, &m.UserID); err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return meals, nil
}

// Update replaces all mutable fields of a meal
func (s *PostgresMealStore) Update(ctx context.Context, meal *models.Meal) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE meals
		    SET name = $1,
		        description = $2,
		        datetime = $3,
		        is_in_diet = $4
		  WHERE id = $5`,
		meal.Name, meal.Description, meal.Datetime, meal.IsInDiet, meal.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a meal permanently
func (s *PostgresMealStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
