package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/forkcast/forkcast/internal/service"
	"github.com/forkcast/forkcast/pkg/problem"
)

type SuggestionHandler struct {
	service service.SuggestionService
}

func NewSuggestionHandler(service service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// MealSuggestions handles GET /v1/users/{userId}/suggestions/meals
// @Summary Weather-aware meal suggestions
// @Description Rank the user's recipes against current weather and schedule context.
// @Tags suggestions
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param limit query integer false "Max suggestions" default(3)
// @Success 200 {object} domain.MealSuggestionsResponse
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/suggestions/meals [get]
func (h *SuggestionHandler) MealSuggestions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			problem.BadRequest("limit must be a positive integer").Write(w)
			return
		}
		limit = parsed
	}

	suggestions, err := h.service.GetMealSuggestions(r.Context(), chi.URLParam(r, "userId"), limit)
	if err != nil {
		writeServiceError(w, err, "Failed to build meal suggestions")
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}

// WeatherContext handles GET /v1/users/{userId}/weather/context
// @Summary Current weather context
// @Description Current conditions, sun data, and schedule context for the user's location. Falls back to simulated weather when no provider is configured.
// @Tags weather
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.WeatherContext
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/weather/context [get]
func (h *SuggestionHandler) WeatherContext(w http.ResponseWriter, r *http.Request) {
	wctx, err := h.service.GetWeatherContext(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, err, "Failed to build weather context")
		return
	}

	writeJSON(w, http.StatusOK, wctx)
}

// Forecast handles GET /v1/users/{userId}/weather/forecast
// @Summary Daily weather forecast
// @Description Per-day forecast aggregated from the provider, cached for an hour.
// @Tags weather
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Days ahead (1-5)" default(5)
// @Success 200 {array} domain.ForecastDay
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/weather/forecast [get]
func (h *SuggestionHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			problem.BadRequest("days must be a positive integer").Write(w)
			return
		}
		days = parsed
	}

	forecast, err := h.service.GetForecast(r.Context(), chi.URLParam(r, "userId"), days)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch forecast")
		return
	}

	writeJSON(w, http.StatusOK, forecast)
}
