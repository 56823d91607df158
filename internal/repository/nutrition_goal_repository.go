package repository

import (
	"context"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NutritionGoalRepository interface {
	// SetActive inserts the goal as active, deactivating the previous
	// active goal for the user in the same transaction.
	SetActive(ctx context.Context, goal *domain.NutritionGoal) error
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.NutritionGoal, error)
}

type nutritionGoalRepository struct {
	db *gorm.DB
}

func NewNutritionGoalRepository(db *gorm.DB) NutritionGoalRepository {
	return &nutritionGoalRepository{db: db}
}

func (r *nutritionGoalRepository) SetActive(ctx context.Context, goal *domain.NutritionGoal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.NutritionGoal{}).
			Where("user_id = ? AND active = true", goal.UserID).
			Update("active", false).Error; err != nil {
			return err
		}
		goal.Active = true
		return tx.Create(goal).Error
	})
}

func (r *nutritionGoalRepository) GetActive(ctx context.Context, userID uuid.UUID) (*domain.NutritionGoal, error) {
	var goal domain.NutritionGoal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = true", userID).
		First(&goal).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}
