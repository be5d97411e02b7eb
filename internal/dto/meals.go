package dto

// CreateMealRequest represents the payload to create a meal.
// Pointer fields distinguish an absent key from a zero value,
// which matters for isInDiet.
type CreateMealRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Datetime    *string `json:"datetime"` // ISO 8601, defaults to now when omitted
	IsInDiet    *bool   `json:"isInDiet"`
}

// UpdateMealRequest represents the payload to replace a meal.
// name, description and isInDiet are always written back with whatever the
// request carried; datetime is only replaced when the key is present.
type UpdateMealRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Datetime    *string `json:"datetime"`
	IsInDiet    *bool   `json:"isInDiet"`
}

// MealResponse represents a meal object in responses
type MealResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Datetime    string  `json:"datetime"`
	IsInDiet    bool    `json:"isInDiet"`
	UserID      int64   `json:"user_id"`
}

// MealEnvelope wraps a meal with a confirmation message for create/update
type MealEnvelope struct {
	Message string       `json:"message"`
	Meal    MealResponse `json:"meal"`
}
