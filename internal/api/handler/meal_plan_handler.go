package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forkcast/forkcast/internal/api/validation"
	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/service"
	"github.com/forkcast/forkcast/pkg/problem"
)

type MealPlanHandler struct {
	service service.MealPlanService
}

func NewMealPlanHandler(service service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{service: service}
}

// CreatePlan handles POST /v1/users/{userId}/meal-plans
// @Summary Create meal plan
// @Description Create a meal plan and make it the active one. Any previously active plan is deactivated.
// @Tags meal-plans
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.CreateMealPlanRequest true "Plan data"
// @Success 201 {object} domain.MealPlan
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meal-plans [post]
func (h *MealPlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	plan, err := h.service.CreatePlan(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		writeServiceError(w, err, "Failed to create meal plan")
		return
	}

	writeJSON(w, http.StatusCreated, plan)
}

// GetActive handles GET /v1/users/{userId}/meal-plans/active
// @Summary Get active meal plan
// @Description Returns the user's active plan with its meals attached.
// @Tags meal-plans
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.MealPlan
// @Failure 404 {object} problem.Problem "No active plan"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meal-plans/active [get]
func (h *MealPlanHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetActivePlan(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch active meal plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// List handles GET /v1/users/{userId}/meal-plans
// @Summary List meal plans
// @Tags meal-plans
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {array} domain.MealPlan
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meal-plans [get]
func (h *MealPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPlans(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, err, "Failed to list meal plans")
		return
	}

	writeJSON(w, http.StatusOK, plans)
}

// GetByID handles GET /v1/users/{userId}/meal-plans/{planId}
// @Summary Get meal plan
// @Tags meal-plans
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param planId path string true "Plan UUID" format(uuid)
// @Success 200 {object} domain.MealPlan
// @Failure 404 {object} problem.Problem "Plan not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meal-plans/{planId} [get]
func (h *MealPlanHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetPlan(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "planId"))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch meal plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// AddMeal handles POST /v1/users/{userId}/meal-plans/{planId}/meals
// @Summary Add meal to plan
// @Description Schedule a meal in a plan. Provide either a recipe_id or a custom_name. A weather snapshot is attached when available.
// @Tags meal-plans
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param planId path string true "Plan UUID" format(uuid)
// @Param request body domain.CreatePlannedMealRequest true "Meal data"
// @Success 201 {object} domain.PlannedMeal
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "Plan or recipe not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meal-plans/{planId}/meals [post]
func (h *MealPlanHandler) AddMeal(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePlannedMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	meal, err := h.service.AddMeal(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "planId"), req)
	if err != nil {
		writeServiceError(w, err, "Failed to add meal")
		return
	}

	writeJSON(w, http.StatusCreated, meal)
}

// UpdateMeal handles PATCH /v1/users/{userId}/meals/{mealId}
// @Summary Update planned meal
// @Description Update a planned meal, including marking it completed.
// @Tags meal-plans
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param mealId path string true "Meal UUID" format(uuid)
// @Param request body domain.UpdatePlannedMealRequest true "Fields to update"
// @Success 200 {object} domain.PlannedMeal
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "Meal not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meals/{mealId} [patch]
func (h *MealPlanHandler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdatePlannedMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	meal, err := h.service.UpdateMeal(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "mealId"), req)
	if err != nil {
		writeServiceError(w, err, "Failed to update meal")
		return
	}

	writeJSON(w, http.StatusOK, meal)
}

// DeleteMeal handles DELETE /v1/users/{userId}/meals/{mealId}
// @Summary Delete planned meal
// @Tags meal-plans
// @Param userId path string true "User UUID" format(uuid)
// @Param mealId path string true "Meal UUID" format(uuid)
// @Success 204 "Deleted"
// @Failure 404 {object} problem.Problem "Meal not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meals/{mealId} [delete]
func (h *MealPlanHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMeal(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "mealId")); err != nil {
		writeServiceError(w, err, "Failed to delete meal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetGoal handles PUT /v1/users/{userId}/nutrition-goal
// @Summary Set nutrition goal
// @Description Set the active daily nutrition goal, replacing any previous one.
// @Tags nutrition
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.SetNutritionGoalRequest true "Goal data"
// @Success 200 {object} domain.NutritionGoal
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/nutrition-goal [put]
func (h *MealPlanHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req domain.SetNutritionGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	goal, err := h.service.SetNutritionGoal(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		writeServiceError(w, err, "Failed to set nutrition goal")
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// GetGoal handles GET /v1/users/{userId}/nutrition-goal
// @Summary Get nutrition goal
// @Tags nutrition
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.NutritionGoal
// @Failure 404 {object} problem.Problem "No active goal"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/nutrition-goal [get]
func (h *MealPlanHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.service.GetNutritionGoal(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch nutrition goal")
		return
	}

	writeJSON(w, http.StatusOK, goal)
}
