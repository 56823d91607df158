package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/domain"
)

// MockUserService is a mock implementation of service.UserService
type MockUserService struct {
	createFunc func(ctx context.Context, req domain.CreateUserRequest) (*domain.UserResponse, error)
	getFunc    func(ctx context.Context, userID string) (*domain.UserResponse, error)
}

func (m *MockUserService) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.UserResponse, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.UserResponse{ID: uuid.New(), Timezone: req.Timezone, City: req.City, CreatedAt: time.Now()}, nil
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*domain.UserResponse, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

// MockRecipeService is a mock implementation of service.RecipeService
type MockRecipeService struct {
	createFunc   func(ctx context.Context, userID string, req domain.CreateRecipeRequest) (*domain.Recipe, error)
	getFunc      func(ctx context.Context, userID, recipeID string) (*domain.Recipe, error)
	listFunc     func(ctx context.Context, userID string, filter domain.RecipeFilter) (*domain.RecipeListResponse, error)
	updateFunc   func(ctx context.Context, userID, recipeID string, req domain.UpdateRecipeRequest) (*domain.Recipe, error)
	deleteFunc   func(ctx context.Context, userID, recipeID string) error
	generateFunc func(ctx context.Context, userID string, req domain.GenerateRecipeRequest) (*domain.GeneratedRecipeResponse, error)
	feedbackFunc func(ctx context.Context, traceID string, req domain.GenerationFeedbackRequest) error
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, userID string, req domain.CreateRecipeRequest) (*domain.Recipe, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.Recipe{ID: uuid.New(), Title: req.Title, Course: req.Course, Cuisine: req.Cuisine}, nil
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, recipeID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, userID string, filter domain.RecipeFilter) (*domain.RecipeListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.RecipeListResponse{
		Data:       []domain.Recipe{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, userID, recipeID string, req domain.UpdateRecipeRequest) (*domain.Recipe, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, recipeID, req)
	}
	return nil, domain.ErrNotFound
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, recipeID)
	}
	return nil
}

func (m *MockRecipeService) GenerateRecipe(ctx context.Context, userID string, req domain.GenerateRecipeRequest) (*domain.GeneratedRecipeResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID, req)
	}
	return nil, domain.ErrProviderUnavailable
}

func (m *MockRecipeService) RecordGenerationFeedback(ctx context.Context, traceID string, req domain.GenerationFeedbackRequest) error {
	if m.feedbackFunc != nil {
		return m.feedbackFunc(ctx, traceID, req)
	}
	return nil
}

// MockMealPlanService is a mock implementation of service.MealPlanService
type MockMealPlanService struct {
	createPlanFunc func(ctx context.Context, userID string, req domain.CreateMealPlanRequest) (*domain.MealPlan, error)
	getPlanFunc    func(ctx context.Context, userID, planID string) (*domain.MealPlan, error)
	getActiveFunc  func(ctx context.Context, userID string) (*domain.MealPlan, error)
	listPlansFunc  func(ctx context.Context, userID string) ([]domain.MealPlan, error)
	addMealFunc    func(ctx context.Context, userID, planID string, req domain.CreatePlannedMealRequest) (*domain.PlannedMeal, error)
	updateMealFunc func(ctx context.Context, userID, mealID string, req domain.UpdatePlannedMealRequest) (*domain.PlannedMeal, error)
	deleteMealFunc func(ctx context.Context, userID, mealID string) error
	setGoalFunc    func(ctx context.Context, userID string, req domain.SetNutritionGoalRequest) (*domain.NutritionGoal, error)
	getGoalFunc    func(ctx context.Context, userID string) (*domain.NutritionGoal, error)
}

func (m *MockMealPlanService) CreatePlan(ctx context.Context, userID string, req domain.CreateMealPlanRequest) (*domain.MealPlan, error) {
	if m.createPlanFunc != nil {
		return m.createPlanFunc(ctx, userID, req)
	}
	return &domain.MealPlan{ID: uuid.New(), Name: req.Name, StartDate: req.StartDate, EndDate: req.EndDate, Active: true}, nil
}

func (m *MockMealPlanService) GetPlan(ctx context.Context, userID, planID string) (*domain.MealPlan, error) {
	if m.getPlanFunc != nil {
		return m.getPlanFunc(ctx, userID, planID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockMealPlanService) GetActivePlan(ctx context.Context, userID string) (*domain.MealPlan, error) {
	if m.getActiveFunc != nil {
		return m.getActiveFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockMealPlanService) ListPlans(ctx context.Context, userID string) ([]domain.MealPlan, error) {
	if m.listPlansFunc != nil {
		return m.listPlansFunc(ctx, userID)
	}
	return []domain.MealPlan{}, nil
}

func (m *MockMealPlanService) AddMeal(ctx context.Context, userID, planID string, req domain.CreatePlannedMealRequest) (*domain.PlannedMeal, error) {
	if m.addMealFunc != nil {
		return m.addMealFunc(ctx, userID, planID, req)
	}
	return &domain.PlannedMeal{ID: uuid.New(), Date: req.Date, MealType: req.MealType, Servings: req.Servings}, nil
}

func (m *MockMealPlanService) UpdateMeal(ctx context.Context, userID, mealID string, req domain.UpdatePlannedMealRequest) (*domain.PlannedMeal, error) {
	if m.updateMealFunc != nil {
		return m.updateMealFunc(ctx, userID, mealID, req)
	}
	return nil, domain.ErrNotFound
}

func (m *MockMealPlanService) DeleteMeal(ctx context.Context, userID, mealID string) error {
	if m.deleteMealFunc != nil {
		return m.deleteMealFunc(ctx, userID, mealID)
	}
	return nil
}

func (m *MockMealPlanService) SetNutritionGoal(ctx context.Context, userID string, req domain.SetNutritionGoalRequest) (*domain.NutritionGoal, error) {
	if m.setGoalFunc != nil {
		return m.setGoalFunc(ctx, userID, req)
	}
	return &domain.NutritionGoal{ID: uuid.New(), DailyCalories: req.DailyCalories, Active: true}, nil
}

func (m *MockMealPlanService) GetNutritionGoal(ctx context.Context, userID string) (*domain.NutritionGoal, error) {
	if m.getGoalFunc != nil {
		return m.getGoalFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

// MockSuggestionService is a mock implementation of service.SuggestionService
type MockSuggestionService struct {
	suggestionsFunc func(ctx context.Context, userID string, limit int) (*domain.MealSuggestionsResponse, error)
	contextFunc     func(ctx context.Context, userID string) (*domain.WeatherContext, error)
	forecastFunc    func(ctx context.Context, userID string, days int) ([]domain.ForecastDay, error)
}

func (m *MockSuggestionService) GetMealSuggestions(ctx context.Context, userID string, limit int) (*domain.MealSuggestionsResponse, error) {
	if m.suggestionsFunc != nil {
		return m.suggestionsFunc(ctx, userID, limit)
	}
	return &domain.MealSuggestionsResponse{Tags: []string{}, Recommendations: []domain.MealRecommendation{}}, nil
}

func (m *MockSuggestionService) GetWeatherContext(ctx context.Context, userID string) (*domain.WeatherContext, error) {
	if m.contextFunc != nil {
		return m.contextFunc(ctx, userID)
	}
	return &domain.WeatherContext{Now: time.Now()}, nil
}

func (m *MockSuggestionService) GetForecast(ctx context.Context, userID string, days int) ([]domain.ForecastDay, error) {
	if m.forecastFunc != nil {
		return m.forecastFunc(ctx, userID, days)
	}
	return []domain.ForecastDay{}, nil
}

// MockAnalyticsService is a mock implementation of service.AnalyticsService
type MockAnalyticsService struct {
	dashboardFunc func(ctx context.Context, userID string, rangeDays int) (*domain.AnalyticsDashboard, error)
}

func (m *MockAnalyticsService) GetDashboard(ctx context.Context, userID string, rangeDays int) (*domain.AnalyticsDashboard, error) {
	if m.dashboardFunc != nil {
		return m.dashboardFunc(ctx, userID, rangeDays)
	}
	return &domain.AnalyticsDashboard{}, nil
}

// MockRecommendationService is a mock implementation of service.RecommendationService
type MockRecommendationService struct {
	recommendationsFunc func(ctx context.Context, userID string) (*domain.PersonalizedRecommendations, error)
}

func (m *MockRecommendationService) GetRecommendations(ctx context.Context, userID string) (*domain.PersonalizedRecommendations, error) {
	if m.recommendationsFunc != nil {
		return m.recommendationsFunc(ctx, userID)
	}
	return &domain.PersonalizedRecommendations{}, nil
}

// MockAssistantService is a mock implementation of service.AssistantService
type MockAssistantService struct {
	answerFunc func(ctx context.Context, userID string, req domain.AssistantRequest) (*domain.AssistantResponse, error)
}

func (m *MockAssistantService) Answer(ctx context.Context, userID string, req domain.AssistantRequest) (*domain.AssistantResponse, error) {
	if m.answerFunc != nil {
		return m.answerFunc(ctx, userID, req)
	}
	return &domain.AssistantResponse{Reply: "ok", Intent: domain.IntentFallback}, nil
}
