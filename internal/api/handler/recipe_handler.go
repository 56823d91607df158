package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/forkcast/forkcast/internal/api/validation"
	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/service"
	"github.com/forkcast/forkcast/pkg/problem"
)

type RecipeHandler struct {
	service service.RecipeService
}

func NewRecipeHandler(service service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// Create handles POST /v1/users/{userId}/recipes
// @Summary Create recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.CreateRecipeRequest true "Recipe data"
// @Success 201 {object} domain.Recipe
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recipes [post]
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	recipe, err := h.service.CreateRecipe(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		writeServiceError(w, err, "Failed to create recipe")
		return
	}

	writeJSON(w, http.StatusCreated, recipe)
}

// GetByID handles GET /v1/users/{userId}/recipes/{recipeId}
// @Summary Get recipe
// @Tags recipes
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param recipeId path string true "Recipe UUID" format(uuid)
// @Success 200 {object} domain.Recipe
// @Failure 404 {object} problem.Problem "Recipe not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recipes/{recipeId} [get]
func (h *RecipeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.service.GetRecipe(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "recipeId"))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch recipe")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// List handles GET /v1/users/{userId}/recipes
// @Summary List recipes
// @Description Cursor-paginated recipe list, newest first. Filter by cuisine, course, or tag.
// @Tags recipes
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param cuisine query string false "Filter by cuisine"
// @Param course query string false "Filter by course" Enums(BREAKFAST, MAIN, SIDE, DESSERT, SNACK)
// @Param tag query string false "Filter by tag"
// @Param limit query integer false "Results per page (1-100)" default(20)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.RecipeListResponse
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recipes [get]
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := parseRecipeFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.ListRecipes(r.Context(), chi.URLParam(r, "userId"), filter)
	if err != nil {
		writeServiceError(w, err, "Failed to list recipes")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Update handles PATCH /v1/users/{userId}/recipes/{recipeId}
// @Summary Update recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param recipeId path string true "Recipe UUID" format(uuid)
// @Param request body domain.UpdateRecipeRequest true "Fields to update"
// @Success 200 {object} domain.Recipe
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "Recipe not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recipes/{recipeId} [patch]
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	recipe, err := h.service.UpdateRecipe(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "recipeId"), req)
	if err != nil {
		writeServiceError(w, err, "Failed to update recipe")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// Delete handles DELETE /v1/users/{userId}/recipes/{recipeId}
// @Summary Delete recipe
// @Tags recipes
// @Param userId path string true "User UUID" format(uuid)
// @Param recipeId path string true "Recipe UUID" format(uuid)
// @Success 204 "Deleted"
// @Failure 404 {object} problem.Problem "Recipe not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recipes/{recipeId} [delete]
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRecipe(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "recipeId")); err != nil {
		writeServiceError(w, err, "Failed to delete recipe")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Generate handles POST /v1/users/{userId}/recipes/generate
// @Summary Generate recipe with AI
// @Description Generate a recipe draft from a natural-language prompt. Rate limited. Set save=true to persist the draft immediately.
// @Tags recipes
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.GenerateRecipeRequest true "Generation prompt"
// @Success 200 {object} domain.GeneratedRecipeResponse
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 429 {object} problem.Problem "Rate limit exceeded"
// @Failure 503 {object} problem.Problem "Generation provider not configured"
// @Router /users/{userId}/recipes/generate [post]
func (h *RecipeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	response, err := h.service.GenerateRecipe(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		writeServiceError(w, err, "Failed to generate recipe")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Feedback handles POST /v1/recipes/generations/{traceId}/feedback
// @Summary Rate a generated recipe
// @Description Attach a 0-1 rating to a previous generation, identified by its trace id.
// @Tags recipes
// @Accept json
// @Param traceId path string true "Generation trace ID"
// @Param request body domain.GenerationFeedbackRequest true "Rating"
// @Success 204 "Recorded"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /recipes/generations/{traceId}/feedback [post]
func (h *RecipeHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	if err := h.service.RecordGenerationFeedback(r.Context(), chi.URLParam(r, "traceId"), req); err != nil {
		writeServiceError(w, err, "Failed to record feedback")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseRecipeFilter(r *http.Request) (domain.RecipeFilter, []problem.FieldError) {
	var filter domain.RecipeFilter
	var fieldErrors []problem.FieldError

	filter.Cuisine = r.URL.Query().Get("cuisine")
	filter.Tag = r.URL.Query().Get("tag")
	filter.Cursor = r.URL.Query().Get("cursor")

	if course := r.URL.Query().Get("course"); course != "" {
		switch domain.Course(course) {
		case domain.CourseBreakfast, domain.CourseMain, domain.CourseSide, domain.CourseDessert, domain.CourseSnack:
			filter.Course = domain.Course(course)
		default:
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "course",
				Message: "must be one of: BREAKFAST MAIN SIDE DESSERT SNACK",
			})
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}

	return filter, nil
}
