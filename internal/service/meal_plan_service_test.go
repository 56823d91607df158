package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/domain"
)

func mealPlanFixture(user *domain.User, plan *domain.MealPlan, recipes *mockRecipeRepo, repo *mockMealPlanRepo, weather WeatherService) MealPlanService {
	if repo.getByIDFn == nil {
		repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.MealPlan, error) {
			if plan != nil && id == plan.ID {
				return plan, nil
			}
			return nil, domain.ErrNotFound
		}
	}
	return NewMealPlanService(userRepoReturning(user), recipes, repo, &mockGoalRepo{}, weather)
}

func TestCreatePlanActivates(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}

	var created *domain.MealPlan
	repo := &mockMealPlanRepo{createActivatingFn: func(ctx context.Context, plan *domain.MealPlan) error {
		plan.ID = uuid.New()
		created = plan
		return nil
	}}
	svc := mealPlanFixture(user, nil, &mockRecipeRepo{}, repo, nil)

	start := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	plan, err := svc.CreatePlan(context.Background(), user.ID.String(), domain.CreateMealPlanRequest{
		Name:      "Week of Aug 30",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 6),
	})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if !plan.Active {
		t.Errorf("new plan must be active")
	}
	if created == nil || created.UserID != user.ID {
		t.Errorf("plan not persisted for the caller: %+v", created)
	}
}

func TestAddMealRequiresRecipeOrName(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	plan := &domain.MealPlan{ID: uuid.New(), UserID: user.ID}
	svc := mealPlanFixture(user, plan, &mockRecipeRepo{}, &mockMealPlanRepo{}, nil)

	_, err := svc.AddMeal(context.Background(), user.ID.String(), plan.ID.String(), domain.CreatePlannedMealRequest{
		Date:     time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC),
		MealType: domain.MealTypeDinner,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput without recipe or custom name", err)
	}
}

func TestAddMealSnapshotsWeather(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	plan := &domain.MealPlan{ID: uuid.New(), UserID: user.ID}

	var created *domain.PlannedMeal
	repo := &mockMealPlanRepo{createMealFn: func(ctx context.Context, meal *domain.PlannedMeal) error {
		meal.ID = uuid.New()
		created = meal
		return nil
	}}

	users := userRepoReturning(user)
	weather := &mockWeatherService{buildContextFn: func(ctx context.Context, u *domain.User) (*domain.WeatherContext, error) {
		return weatherContext(func(w *domain.WeatherContext) {
			w.Weather.FeelsLikeF = 68
			w.Weather.Condition = "Clouds"
		}), nil
	}}

	repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.MealPlan, error) {
		return plan, nil
	}
	svc := NewMealPlanService(users, &mockRecipeRepo{}, repo, &mockGoalRepo{}, weather)

	meal, err := svc.AddMeal(context.Background(), user.ID.String(), plan.ID.String(), domain.CreatePlannedMealRequest{
		CustomName: "Leftover night",
		Date:       time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC),
		MealType:   domain.MealTypeDinner,
		Servings:   2,
	})
	if err != nil {
		t.Fatalf("AddMeal() error = %v", err)
	}
	if meal.WeatherCondition != "Clouds" {
		t.Errorf("WeatherCondition = %q, want snapshot", meal.WeatherCondition)
	}
	if meal.WeatherFeelsLike == nil || *meal.WeatherFeelsLike != 68 {
		t.Errorf("WeatherFeelsLike = %v, want 68", meal.WeatherFeelsLike)
	}
	if created == nil || created.MealPlanID != plan.ID {
		t.Errorf("meal not persisted on the plan")
	}
}

func TestAddMealRejectsForeignRecipe(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	plan := &domain.MealPlan{ID: uuid.New(), UserID: user.ID}
	foreignRecipe := &domain.Recipe{ID: uuid.New(), UserID: uuid.New(), Title: "Not Yours"}

	recipes := &mockRecipeRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
		return foreignRecipe, nil
	}}
	svc := mealPlanFixture(user, plan, recipes, &mockMealPlanRepo{}, nil)

	_, err := svc.AddMeal(context.Background(), user.ID.String(), plan.ID.String(), domain.CreatePlannedMealRequest{
		RecipeID: &foreignRecipe.ID,
		Date:     time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC),
		MealType: domain.MealTypeDinner,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for a foreign recipe", err)
	}
}

func TestUpdateMealCompletion(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Timezone: "UTC"}
	meal := &domain.PlannedMeal{ID: uuid.New(), UserID: user.ID, MealType: domain.MealTypeLunch, Servings: 2}

	var updated *domain.PlannedMeal
	repo := &mockMealPlanRepo{
		getMealByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.PlannedMeal, error) {
			return meal, nil
		},
		updateMealFn: func(ctx context.Context, m *domain.PlannedMeal) error {
			updated = m
			return nil
		},
	}
	svc := NewMealPlanService(userRepoReturning(user), &mockRecipeRepo{}, repo, &mockGoalRepo{}, nil)

	got, err := svc.UpdateMeal(context.Background(), user.ID.String(), meal.ID.String(), domain.UpdatePlannedMealRequest{
		Completed: ptr(true),
	})
	if err != nil {
		t.Fatalf("UpdateMeal() error = %v", err)
	}
	if !got.Completed {
		t.Errorf("Completed not applied")
	}
	if got.MealType != domain.MealTypeLunch || got.Servings != 2 {
		t.Errorf("unset fields must remain unchanged: %+v", got)
	}
	if updated == nil {
		t.Errorf("meal not persisted")
	}
}
