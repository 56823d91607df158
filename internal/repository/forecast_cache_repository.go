package repository

import (
	"context"
	"time"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForecastCacheRepository stores day-level forecast aggregates. Writes are
// upserts keyed by (user, date); concurrent writers race last-writer-wins,
// which is acceptable because cached data is advisory.
type ForecastCacheRepository interface {
	Upsert(ctx context.Context, day *domain.ForecastDay) error
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.ForecastDay, error)
}

type forecastCacheRepository struct {
	db *gorm.DB
}

func NewForecastCacheRepository(db *gorm.DB) ForecastCacheRepository {
	return &forecastCacheRepository{db: db}
}

func (r *forecastCacheRepository) Upsert(ctx context.Context, day *domain.ForecastDay) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"high_f", "low_f", "current_f", "condition", "precipitation", "fetched_at",
		}),
	}).Create(day).Error
}

func (r *forecastCacheRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.ForecastDay, error) {
	var day domain.ForecastDay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&day).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}
