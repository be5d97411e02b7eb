package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"DAILYDIET_BACK-END/internal/dto"
	"DAILYDIET_BACK-END/internal/models"
	"DAILYDIET_BACK-END/internal/store"
	"DAILYDIET_BACK-END/internal/utils"
)

// MealsHandler manages meal-related endpoints
type MealsHandler struct {
	meals store.MealStore
}

// NewMealsHandler creates a new MealsHandler
func NewMealsHandler(meals store.MealStore) *MealsHandler {
	return &MealsHandler{meals: meals}
}

// Meals dispatches by HTTP method for /meals
func (h *MealsHandler) Meals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateMeal(w, r)
	case http.MethodGet:
		h.ListMeals(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// MealByID dispatches by HTTP method for /meal/{id}
func (h *MealsHandler) MealByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetMeal(w, r)
	case http.MethodPut:
		h.UpdateMeal(w, r)
	case http.MethodDelete:
		h.DeleteMeal(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CreateMeal handles POST /meals
// @Summary Create a meal
// @Tags meals
// @Accept json
// @Produce json
// @Param payload body dto.CreateMealRequest true "Meal payload"
// @Success 201 {object} dto.MealEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /meals [post]
func (h *MealsHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	// Extract authenticated user id from context
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	var req dto.CreateMealRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	// name, description and isInDiet must all be present. An absent isInDiet
	// is not the same thing as false.
	if req.Name == nil || *req.Name == "" || req.Description == nil || *req.Description == "" || req.IsInDiet == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "name, description and isInDiet are required")
		return
	}

	// datetime defaults to the current time when omitted
	mealTime := time.Now()
	if req.Datetime != nil && *req.Datetime != "" {
		t, err := utils.ParseDatetime(*req.Datetime)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "datetime must be ISO 8601 format")
			return
		}
		mealTime = t
	}

	// Owner is always the acting user, never taken from the payload
	meal := &models.Meal{
		Name:        *req.Name,
		Description: req.Description,
		Datetime:    mealTime,
		IsInDiet:    *req.IsInDiet,
		UserID:      userID,
	}

	meal, err := h.meals.Create(r.Context(), meal)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.MealEnvelope{
		Message: "Meal created",
		Meal:    toMealResponse(meal),
	})
}

// ListMeals handles GET /meals
// @Summary List the current user's meals
// @Tags meals
// @Produce json
// @Success 200 {array} dto.MealResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /meals [get]
func (h *MealsHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	meals, err := h.meals.ListByUser(r.Context(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	items := make([]dto.MealResponse, 0, len(meals))
	for i := range meals {
		items = append(items, toMealResponse(&meals[i]))
	}

	utils.WriteJSONResponse(w, http.StatusOK, items)
}

// GetMeal handles GET /meal/{id}
// @Summary Get a meal
// @Tags meals
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {object} dto.MealResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /meal/{id} [get]
func (h *MealsHandler) GetMeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	mealID, err := parseMealID(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Meal not found")
		return
	}

	// Existence is checked before ownership: a fake id yields 404, a real
	// one owned by someone else yields 403.
	meal, err := h.meals.GetByID(r.Context(), mealID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Meal not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if meal.UserID != userID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Unauthorized")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toMealResponse(meal))
}

// UpdateMeal handles PUT /meal/{id}
// @Summary Update a meal
// @Tags meals
// @Accept json
// @Produce json
// @Param id path int true "Meal ID"
// @Param payload body dto.UpdateMealRequest true "Update payload"
// @Success 200 {object} dto.MealEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /meal/{id} [put]
func (h *MealsHandler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	mealID, err := parseMealID(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Meal not found")
		return
	}

	meal, err := h.meals.GetByID(r.Context(), mealID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Meal not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if meal.UserID != userID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Unauthorized")
		return
	}

	var req dto.UpdateMealRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	// name, description and isInDiet are replaced with whatever the request
	// carried, absent keys included. Only datetime keeps its old value when
	// the key is missing.
	meal.Name = ""
	if req.Name != nil {
		meal.Name = *req.Name
	}
	meal.Description = req.Description
	meal.IsInDiet = false
	if req.IsInDiet != nil {
		meal.IsInDiet = *req.IsInDiet
	}
	if req.Datetime != nil {
		t, err := utils.ParseDatetime(*req.Datetime)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "datetime must be ISO 8601 format")
			return
		}
		meal.Datetime = t
	}

	if err := h.meals.Update(r.Context(), meal); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Meal not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MealEnvelope{
		Message: "Meal updated",
		Meal:    toMealResponse(meal),
	})
}

// DeleteMeal handles DELETE /meal/{id}
// @Summary Delete a meal
// @Tags meals
// @Produce json
// @Param id path int true "Meal ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /meal/{id} [delete]
func (h *MealsHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	mealID, err := parseMealID(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Meal not found")
		return
	}

	meal, err := h.meals.GetByID(r.Context(), mealID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Meal not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if meal.UserID != userID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Unauthorized")
		return
	}

	if err := h.meals.Delete(r.Context(), mealID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Meal not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Meal deleted"})
}

func parseMealID(path string) (int64, error) {
	idStr := strings.TrimPrefix(path, "/meal/")
	return strconv.ParseInt(idStr, 10, 64)
}

func toMealResponse(m *models.Meal) dto.MealResponse {
	return dto.MealResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Datetime:    utils.FormatDatetime(m.Datetime),
		IsInDiet:    m.IsInDiet,
		UserID:      m.UserID,
	}
}
