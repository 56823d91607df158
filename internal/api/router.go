package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/forkcast/forkcast/docs"
	"github.com/forkcast/forkcast/internal/api/handler"
	"github.com/forkcast/forkcast/internal/api/middleware"
	"github.com/forkcast/forkcast/internal/ratelimit"
)

// Per-feature ceilings for the LLM-backed endpoints. Everything else is
// unlimited; the limiter only guards spend.
var (
	generateLimit  = ratelimit.Limit{MaxRequests: 10, Window: time.Hour}
	assistantLimit = ratelimit.Limit{MaxRequests: 20, Window: time.Minute}
)

type Router struct {
	userHandler       *handler.UserHandler
	recipeHandler     *handler.RecipeHandler
	mealPlanHandler   *handler.MealPlanHandler
	analyticsHandler  *handler.AnalyticsHandler
	suggestionHandler *handler.SuggestionHandler
	assistantHandler  *handler.AssistantHandler
	limiter           *ratelimit.Limiter
}

func NewRouter(
	userHandler *handler.UserHandler,
	recipeHandler *handler.RecipeHandler,
	mealPlanHandler *handler.MealPlanHandler,
	analyticsHandler *handler.AnalyticsHandler,
	suggestionHandler *handler.SuggestionHandler,
	assistantHandler *handler.AssistantHandler,
	limiter *ratelimit.Limiter,
) *Router {
	return &Router{
		userHandler:       userHandler,
		recipeHandler:     recipeHandler,
		mealPlanHandler:   mealPlanHandler,
		analyticsHandler:  analyticsHandler,
		suggestionHandler: suggestionHandler,
		assistantHandler:  assistantHandler,
		limiter:           limiter,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Generation feedback is keyed by trace id, not user id
		r.Post("/recipes/generations/{traceId}/feedback", rt.recipeHandler.Feedback)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			r.Route("/{userId}/recipes", func(r chi.Router) {
				r.Post("/", rt.recipeHandler.Create)
				r.Get("/", rt.recipeHandler.List)
				r.With(middleware.RateLimit(rt.limiter, "recipe-generate", generateLimit)).
					Post("/generate", rt.recipeHandler.Generate)
				r.Get("/{recipeId}", rt.recipeHandler.GetByID)
				r.Patch("/{recipeId}", rt.recipeHandler.Update)
				r.Delete("/{recipeId}", rt.recipeHandler.Delete)
			})

			r.Route("/{userId}/meal-plans", func(r chi.Router) {
				r.Post("/", rt.mealPlanHandler.CreatePlan)
				r.Get("/", rt.mealPlanHandler.List)
				r.Get("/active", rt.mealPlanHandler.GetActive)
				r.Get("/{planId}", rt.mealPlanHandler.GetByID)
				r.Post("/{planId}/meals", rt.mealPlanHandler.AddMeal)
			})

			r.Route("/{userId}/meals", func(r chi.Router) {
				r.Patch("/{mealId}", rt.mealPlanHandler.UpdateMeal)
				r.Delete("/{mealId}", rt.mealPlanHandler.DeleteMeal)
			})

			r.Route("/{userId}/nutrition-goal", func(r chi.Router) {
				r.Put("/", rt.mealPlanHandler.SetGoal)
				r.Get("/", rt.mealPlanHandler.GetGoal)
			})

			r.Route("/{userId}/analytics", func(r chi.Router) {
				r.Get("/dashboard", rt.analyticsHandler.Dashboard)
				r.Get("/recommendations", rt.analyticsHandler.Recommendations)
			})

			r.Get("/{userId}/suggestions/meals", rt.suggestionHandler.MealSuggestions)

			r.Route("/{userId}/weather", func(r chi.Router) {
				r.Get("/context", rt.suggestionHandler.WeatherContext)
				r.Get("/forecast", rt.suggestionHandler.Forecast)
			})

			r.With(middleware.RateLimit(rt.limiter, "assistant", assistantLimit)).
				Post("/{userId}/assistant", rt.assistantHandler.Ask)
		})
	})

	return r
}
