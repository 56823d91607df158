package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/langfuse"
	"github.com/forkcast/forkcast/internal/llm"
)

type mockUserRepo struct {
	createFn  func(ctx context.Context, user *domain.User) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	existsFn  func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}

// userRepoReturning is a repo that always finds the given user.
func userRepoReturning(user *domain.User) *mockUserRepo {
	return &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			if id != user.ID {
				return nil, domain.ErrNotFound
			}
			return user, nil
		},
	}
}

type mockRecipeRepo struct {
	createFn  func(ctx context.Context, recipe *domain.Recipe) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	listFn    func(ctx context.Context, userID uuid.UUID, filter domain.RecipeFilter) ([]domain.Recipe, error)
	listAllFn func(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error)
	updateFn  func(ctx context.Context, recipe *domain.Recipe) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRecipeRepo) Create(ctx context.Context, recipe *domain.Recipe) error {
	return m.createFn(ctx, recipe)
}

func (m *mockRecipeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockRecipeRepo) List(ctx context.Context, userID uuid.UUID, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	return m.listFn(ctx, userID, filter)
}

func (m *mockRecipeRepo) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error) {
	return m.listAllFn(ctx, userID)
}

func (m *mockRecipeRepo) Update(ctx context.Context, recipe *domain.Recipe) error {
	return m.updateFn(ctx, recipe)
}

func (m *mockRecipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockMealPlanRepo struct {
	createActivatingFn     func(ctx context.Context, plan *domain.MealPlan) error
	getByIDFn              func(ctx context.Context, id uuid.UUID) (*domain.MealPlan, error)
	getActiveFn            func(ctx context.Context, userID uuid.UUID) (*domain.MealPlan, error)
	listByUserFn           func(ctx context.Context, userID uuid.UUID) ([]domain.MealPlan, error)
	createMealFn           func(ctx context.Context, meal *domain.PlannedMeal) error
	getMealByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.PlannedMeal, error)
	updateMealFn           func(ctx context.Context, meal *domain.PlannedMeal) error
	deleteMealFn           func(ctx context.Context, id uuid.UUID) error
	listMealsByDateRangeFn func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.PlannedMeal, error)
	listMealsByPlanFn      func(ctx context.Context, planID uuid.UUID) ([]domain.PlannedMeal, error)
}

func (m *mockMealPlanRepo) CreateActivating(ctx context.Context, plan *domain.MealPlan) error {
	return m.createActivatingFn(ctx, plan)
}

func (m *mockMealPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MealPlan, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockMealPlanRepo) GetActive(ctx context.Context, userID uuid.UUID) (*domain.MealPlan, error) {
	return m.getActiveFn(ctx, userID)
}

func (m *mockMealPlanRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MealPlan, error) {
	return m.listByUserFn(ctx, userID)
}

func (m *mockMealPlanRepo) CreateMeal(ctx context.Context, meal *domain.PlannedMeal) error {
	return m.createMealFn(ctx, meal)
}

func (m *mockMealPlanRepo) GetMealByID(ctx context.Context, id uuid.UUID) (*domain.PlannedMeal, error) {
	return m.getMealByIDFn(ctx, id)
}

func (m *mockMealPlanRepo) UpdateMeal(ctx context.Context, meal *domain.PlannedMeal) error {
	return m.updateMealFn(ctx, meal)
}

func (m *mockMealPlanRepo) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	return m.deleteMealFn(ctx, id)
}

func (m *mockMealPlanRepo) ListMealsByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.PlannedMeal, error) {
	return m.listMealsByDateRangeFn(ctx, userID, from, to)
}

func (m *mockMealPlanRepo) ListMealsByPlan(ctx context.Context, planID uuid.UUID) ([]domain.PlannedMeal, error) {
	return m.listMealsByPlanFn(ctx, planID)
}

type mockGoalRepo struct {
	setActiveFn func(ctx context.Context, goal *domain.NutritionGoal) error
	getActiveFn func(ctx context.Context, userID uuid.UUID) (*domain.NutritionGoal, error)
}

func (m *mockGoalRepo) SetActive(ctx context.Context, goal *domain.NutritionGoal) error {
	return m.setActiveFn(ctx, goal)
}

func (m *mockGoalRepo) GetActive(ctx context.Context, userID uuid.UUID) (*domain.NutritionGoal, error) {
	if m.getActiveFn != nil {
		return m.getActiveFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

type mockForecastCacheRepo struct {
	upsertFn    func(ctx context.Context, day *domain.ForecastDay) error
	getByDateFn func(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.ForecastDay, error)
}

func (m *mockForecastCacheRepo) Upsert(ctx context.Context, day *domain.ForecastDay) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, day)
	}
	return nil
}

func (m *mockForecastCacheRepo) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.ForecastDay, error) {
	if m.getByDateFn != nil {
		return m.getByDateFn(ctx, userID, date)
	}
	return nil, domain.ErrNotFound
}

type mockWeatherService struct {
	buildContextFn func(ctx context.Context, user *domain.User) (*domain.WeatherContext, error)
	forecastFn     func(ctx context.Context, user *domain.User, days int) ([]domain.ForecastDay, error)
}

func (m *mockWeatherService) BuildContext(ctx context.Context, user *domain.User) (*domain.WeatherContext, error) {
	return m.buildContextFn(ctx, user)
}

func (m *mockWeatherService) Forecast(ctx context.Context, user *domain.User, days int) ([]domain.ForecastDay, error) {
	return m.forecastFn(ctx, user, days)
}

type mockCompletionClient struct {
	generateRecipeFn func(ctx context.Context, prompt string, constraints llm.RecipeConstraints) (*llm.GeneratedRecipe, error)
	completeFn       func(ctx context.Context, query string) (string, error)
}

func (m *mockCompletionClient) GenerateRecipe(ctx context.Context, prompt string, constraints llm.RecipeConstraints) (*llm.GeneratedRecipe, error) {
	return m.generateRecipeFn(ctx, prompt, constraints)
}

func (m *mockCompletionClient) Complete(ctx context.Context, query string) (string, error) {
	return m.completeFn(ctx, query)
}

type mockLangfuse struct {
	enabled  bool
	traceFn  func(ctx context.Context, in langfuse.GenerationTrace) (string, error)
	scoreFn  func(ctx context.Context, in langfuse.Score) error
	lastScore *langfuse.Score
}

func (m *mockLangfuse) IsEnabled() bool { return m.enabled }

func (m *mockLangfuse) TraceGeneration(ctx context.Context, in langfuse.GenerationTrace) (string, error) {
	if m.traceFn != nil {
		return m.traceFn(ctx, in)
	}
	return "trace-1", nil
}

func (m *mockLangfuse) ScoreTrace(ctx context.Context, in langfuse.Score) error {
	m.lastScore = &in
	if m.scoreFn != nil {
		return m.scoreFn(ctx, in)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
