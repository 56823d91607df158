package repository

import (
	"context"
	"time"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealPlanRepository interface {
	// CreateActivating inserts the plan as active and deactivates any
	// previously active plan for the user in the same transaction.
	CreateActivating(ctx context.Context, plan *domain.MealPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MealPlan, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.MealPlan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MealPlan, error)

	CreateMeal(ctx context.Context, meal *domain.PlannedMeal) error
	GetMealByID(ctx context.Context, id uuid.UUID) (*domain.PlannedMeal, error)
	UpdateMeal(ctx context.Context, meal *domain.PlannedMeal) error
	DeleteMeal(ctx context.Context, id uuid.UUID) error

	// ListMealsByDateRange returns a user's planned meals with recipes
	// preloaded, ordered by date ascending.
	ListMealsByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.PlannedMeal, error)
	ListMealsByPlan(ctx context.Context, planID uuid.UUID) ([]domain.PlannedMeal, error)
}

type mealPlanRepository struct {
	db *gorm.DB
}

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) CreateActivating(ctx context.Context, plan *domain.MealPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.MealPlan{}).
			Where("user_id = ? AND active = true", plan.UserID).
			Update("active", false).Error; err != nil {
			return err
		}
		plan.Active = true
		return tx.Create(plan).Error
	})
}

func (r *mealPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MealPlan, error) {
	var plan domain.MealPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *mealPlanRepository) GetActive(ctx context.Context, userID uuid.UUID) (*domain.MealPlan, error) {
	var plan domain.MealPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = true", userID).
		First(&plan).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *mealPlanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MealPlan, error) {
	var plans []domain.MealPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&plans).Error
	return plans, err
}

func (r *mealPlanRepository) CreateMeal(ctx context.Context, meal *domain.PlannedMeal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *mealPlanRepository) GetMealByID(ctx context.Context, id uuid.UUID) (*domain.PlannedMeal, error) {
	var meal domain.PlannedMeal
	err := r.db.WithContext(ctx).Preload("Recipe").First(&meal, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

func (r *mealPlanRepository) UpdateMeal(ctx context.Context, meal *domain.PlannedMeal) error {
	return r.db.WithContext(ctx).Save(meal).Error
}

func (r *mealPlanRepository) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.PlannedMeal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mealPlanRepository) ListMealsByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.PlannedMeal, error) {
	var meals []domain.PlannedMeal
	err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&meals).Error
	return meals, err
}

func (r *mealPlanRepository) ListMealsByPlan(ctx context.Context, planID uuid.UUID) ([]domain.PlannedMeal, error) {
	var meals []domain.PlannedMeal
	err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("meal_plan_id = ?", planID).
		Order("date ASC").
		Find(&meals).Error
	return meals, err
}
