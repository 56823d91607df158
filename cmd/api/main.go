// Forkcast API
//
// REST API for weather-aware meal planning, recipes, and cooking analytics.
//
//	@title			Forkcast API
//	@version		1.0
//	@description	Plan meals around the weather: recipes, meal plans, suggestions, analytics, and a kitchen assistant.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User profile endpoints
//
//	@tag.name			recipes
//	@tag.description	Recipe box and AI recipe generation endpoints
//
//	@tag.name			meal-plans
//	@tag.description	Meal plan and planned meal endpoints
//
//	@tag.name			nutrition
//	@tag.description	Nutrition goal endpoints
//
//	@tag.name			analytics
//	@tag.description	Cooking analytics and personalized recommendation endpoints
//
//	@tag.name			suggestions
//	@tag.description	Weather-aware meal suggestion endpoints
//
//	@tag.name			weather
//	@tag.description	Weather context and forecast endpoints
//
//	@tag.name			assistant
//	@tag.description	Kitchen assistant endpoints
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/forkcast/forkcast/internal/api"
	"github.com/forkcast/forkcast/internal/api/handler"
	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/langfuse"
	"github.com/forkcast/forkcast/internal/llm"
	"github.com/forkcast/forkcast/internal/ratelimit"
	"github.com/forkcast/forkcast/internal/repository"
	"github.com/forkcast/forkcast/internal/seed"
	"github.com/forkcast/forkcast/internal/service"
	"github.com/forkcast/forkcast/internal/telemetry"
	"github.com/forkcast/forkcast/internal/weather"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Recipe{},
		&domain.MealPlan{},
		&domain.PlannedMeal{},
		&domain.NutritionGoal{},
		&domain.ForecastDay{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize tracing (no-op when Langfuse is not configured)
	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg, "forkcast-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Tracer shutdown failed: %v", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	mealPlanRepo := repository.NewMealPlanRepository(db)
	goalRepo := repository.NewNutritionGoalRepository(db)
	forecastRepo := repository.NewForecastCacheRepository(db)

	// Initialize weather provider (nil means simulated weather)
	var weatherProvider weather.Provider
	if client := weather.NewOpenWeatherClient(cfg.OpenWeatherAPIKey, ""); client != nil {
		weatherProvider = client
	} else {
		log.Println("Warning: OpenWeather API key not configured, using simulated weather")
	}

	// Initialize OpenAI client (may be nil if not configured)
	var completions llm.CompletionClient
	if client := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIRecipeModel); client != nil {
		completions = client
	} else {
		log.Println("Warning: OpenAI API key not configured, recipe generation will be unavailable")
	}

	// Initialize Langfuse client (disabled no-op if not configured)
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})

	// Initialize services
	weatherService := service.NewWeatherService(weatherProvider, forecastRepo, nil)
	userService := service.NewUserService(userRepo)
	recipeService := service.NewRecipeService(userRepo, recipeRepo, completions, langfuseClient, cfg.OpenAIRecipeModel)
	mealPlanService := service.NewMealPlanService(userRepo, recipeRepo, mealPlanRepo, goalRepo, weatherService)
	suggestionService := service.NewSuggestionService(userRepo, recipeRepo, weatherService)
	analyticsService := service.NewAnalyticsService(userRepo, recipeRepo, mealPlanRepo, goalRepo, nil)
	recommendationService := service.NewRecommendationService(userRepo, recipeRepo, mealPlanRepo, goalRepo, nil)
	assistantService := service.NewAssistantService(userRepo, mealPlanRepo, suggestionService, weatherService, completions, nil)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	mealPlanHandler := handler.NewMealPlanHandler(mealPlanService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, recommendationService)
	suggestionHandler := handler.NewSuggestionHandler(suggestionService)
	assistantHandler := handler.NewAssistantHandler(assistantService)

	// Setup router
	limiter := ratelimit.NewLimiter()
	router := api.NewRouter(userHandler, recipeHandler, mealPlanHandler, analyticsHandler, suggestionHandler, assistantHandler, limiter)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
