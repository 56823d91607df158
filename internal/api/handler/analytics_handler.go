package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/forkcast/forkcast/internal/service"
	"github.com/forkcast/forkcast/pkg/problem"
)

type AnalyticsHandler struct {
	analytics       service.AnalyticsService
	recommendations service.RecommendationService
}

func NewAnalyticsHandler(analytics service.AnalyticsService, recommendations service.RecommendationService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, recommendations: recommendations}
}

// Dashboard handles GET /v1/users/{userId}/analytics/dashboard
// @Summary Analytics dashboard
// @Description Aggregated cooking analytics over a trailing window. Defaults to the last 12 weeks.
// @Tags analytics
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param range_days query integer false "Window length in days" default(84)
// @Success 200 {object} domain.AnalyticsDashboard
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rangeDays := 0
	if raw := r.URL.Query().Get("range_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			problem.BadRequest("range_days must be a positive integer").Write(w)
			return
		}
		rangeDays = parsed
	}

	dashboard, err := h.analytics.GetDashboard(r.Context(), chi.URLParam(r, "userId"), rangeDays)
	if err != nil {
		writeServiceError(w, err, "Failed to build analytics dashboard")
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// Recommendations handles GET /v1/users/{userId}/analytics/recommendations
// @Summary Personalized recommendations
// @Description Rotation, cuisine, nutritional, and seasonal suggestions based on the last 8 weeks of planning history.
// @Tags analytics
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.PersonalizedRecommendations
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/analytics/recommendations [get]
func (h *AnalyticsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	recommendations, err := h.recommendations.GetRecommendations(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, err, "Failed to build recommendations")
		return
	}

	writeJSON(w, http.StatusOK, recommendations)
}
