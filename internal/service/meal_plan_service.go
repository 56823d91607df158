package service

import (
	"context"
	"fmt"
	"log"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/repository"
)

// MealPlanService handles meal plans, planned meals, and nutrition goals.
type MealPlanService interface {
	CreatePlan(ctx context.Context, userID string, req domain.CreateMealPlanRequest) (*domain.MealPlan, error)
	GetPlan(ctx context.Context, userID, planID string) (*domain.MealPlan, error)
	GetActivePlan(ctx context.Context, userID string) (*domain.MealPlan, error)
	ListPlans(ctx context.Context, userID string) ([]domain.MealPlan, error)

	AddMeal(ctx context.Context, userID, planID string, req domain.CreatePlannedMealRequest) (*domain.PlannedMeal, error)
	UpdateMeal(ctx context.Context, userID, mealID string, req domain.UpdatePlannedMealRequest) (*domain.PlannedMeal, error)
	DeleteMeal(ctx context.Context, userID, mealID string) error

	SetNutritionGoal(ctx context.Context, userID string, req domain.SetNutritionGoalRequest) (*domain.NutritionGoal, error)
	GetNutritionGoal(ctx context.Context, userID string) (*domain.NutritionGoal, error)
}

type mealPlanService struct {
	users     repository.UserRepository
	recipes   repository.RecipeRepository
	mealPlans repository.MealPlanRepository
	goals     repository.NutritionGoalRepository
	weather   WeatherService
}

// NewMealPlanService creates a new meal plan service. weather may be nil
// to skip weather snapshots on planned meals.
func NewMealPlanService(
	users repository.UserRepository,
	recipes repository.RecipeRepository,
	mealPlans repository.MealPlanRepository,
	goals repository.NutritionGoalRepository,
	weather WeatherService,
) MealPlanService {
	return &mealPlanService{
		users:     users,
		recipes:   recipes,
		mealPlans: mealPlans,
		goals:     goals,
		weather:   weather,
	}
}

// CreatePlan creates a plan and makes it the user's active one,
// deactivating any previous active plan in the same transaction.
func (s *mealPlanService) CreatePlan(ctx context.Context, userID string, req domain.CreateMealPlanRequest) (*domain.MealPlan, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	plan := &domain.MealPlan{
		UserID:    user.ID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    true,
	}
	if err := s.mealPlans.CreateActivating(ctx, plan); err != nil {
		return nil, fmt.Errorf("create meal plan: %w", err)
	}
	return plan, nil
}

func (s *mealPlanService) GetPlan(ctx context.Context, userID, planID string) (*domain.MealPlan, error) {
	return s.ownedPlan(ctx, userID, planID)
}

// GetActivePlan returns the active plan with its meals attached.
func (s *mealPlanService) GetActivePlan(ctx context.Context, userID string) (*domain.MealPlan, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	plan, err := s.mealPlans.GetActive(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	meals, err := s.mealPlans.ListMealsByPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("load plan meals: %w", err)
	}
	plan.Meals = meals
	return plan, nil
}

func (s *mealPlanService) ListPlans(ctx context.Context, userID string) ([]domain.MealPlan, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return s.mealPlans.ListByUser(ctx, user.ID)
}

// AddMeal adds a meal to a plan. Either a recipe reference or a custom
// name must be given. Current weather is snapshotted onto the row so
// seasonal analysis can later correlate choices with conditions.
func (s *mealPlanService) AddMeal(ctx context.Context, userID, planID string, req domain.CreatePlannedMealRequest) (*domain.PlannedMeal, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if req.RecipeID == nil && req.CustomName == "" {
		return nil, fmt.Errorf("%w: either recipe_id or custom_name is required", domain.ErrInvalidInput)
	}
	if req.RecipeID != nil {
		recipe, err := s.recipes.GetByID(ctx, *req.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("resolve recipe: %w", err)
		}
		if recipe.UserID != plan.UserID {
			return nil, domain.ErrNotFound
		}
	}

	servings := req.Servings
	if servings <= 0 {
		servings = 1
	}
	meal := &domain.PlannedMeal{
		MealPlanID: plan.ID,
		UserID:     plan.UserID,
		RecipeID:   req.RecipeID,
		CustomName: req.CustomName,
		Date:       req.Date,
		MealType:   req.MealType,
		Servings:   servings,
	}

	if s.weather != nil {
		if user, err := s.users.GetByID(ctx, plan.UserID); err == nil {
			if wctx, err := s.weather.BuildContext(ctx, user); err == nil {
				feels := wctx.Weather.FeelsLikeF
				meal.WeatherCondition = wctx.Weather.Condition
				meal.WeatherFeelsLike = &feels
			} else {
				log.Printf("[mealplan] weather snapshot unavailable: %v", err)
			}
		}
	}

	if err := s.mealPlans.CreateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("add planned meal: %w", err)
	}
	return meal, nil
}

func (s *mealPlanService) UpdateMeal(ctx context.Context, userID, mealID string, req domain.UpdatePlannedMealRequest) (*domain.PlannedMeal, error) {
	meal, err := s.ownedMeal(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}

	if req.RecipeID != nil {
		recipe, err := s.recipes.GetByID(ctx, *req.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("resolve recipe: %w", err)
		}
		if recipe.UserID != meal.UserID {
			return nil, domain.ErrNotFound
		}
		meal.RecipeID = req.RecipeID
	}
	if req.CustomName != nil {
		meal.CustomName = *req.CustomName
	}
	if req.Date != nil {
		meal.Date = *req.Date
	}
	if req.MealType != nil {
		meal.MealType = *req.MealType
	}
	if req.Servings != nil {
		meal.Servings = *req.Servings
	}
	if req.Completed != nil {
		meal.Completed = *req.Completed
	}

	if err := s.mealPlans.UpdateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("update planned meal: %w", err)
	}
	return meal, nil
}

func (s *mealPlanService) DeleteMeal(ctx context.Context, userID, mealID string) error {
	meal, err := s.ownedMeal(ctx, userID, mealID)
	if err != nil {
		return err
	}
	return s.mealPlans.DeleteMeal(ctx, meal.ID)
}

// SetNutritionGoal replaces the user's active goal.
func (s *mealPlanService) SetNutritionGoal(ctx context.Context, userID string, req domain.SetNutritionGoalRequest) (*domain.NutritionGoal, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	goal := &domain.NutritionGoal{
		UserID:        user.ID,
		DailyCalories: req.DailyCalories,
		DailyProteinG: req.DailyProteinG,
		DailyCarbsG:   req.DailyCarbsG,
		DailyFatG:     req.DailyFatG,
		Active:        true,
	}
	if err := s.goals.SetActive(ctx, goal); err != nil {
		return nil, fmt.Errorf("set nutrition goal: %w", err)
	}
	return goal, nil
}

func (s *mealPlanService) GetNutritionGoal(ctx context.Context, userID string) (*domain.NutritionGoal, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return s.goals.GetActive(ctx, user.ID)
}

func (s *mealPlanService) ownedPlan(ctx context.Context, userID, planID string) (*domain.MealPlan, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(planID, "meal plan")
	if err != nil {
		return nil, err
	}
	plan, err := s.mealPlans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.UserID != user.ID {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

func (s *mealPlanService) ownedMeal(ctx context.Context, userID, mealID string) (*domain.PlannedMeal, error) {
	user, err := getUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(mealID, "planned meal")
	if err != nil {
		return nil, err
	}
	meal, err := s.mealPlans.GetMealByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meal.UserID != user.ID {
		return nil, domain.ErrNotFound
	}
	return meal, nil
}
