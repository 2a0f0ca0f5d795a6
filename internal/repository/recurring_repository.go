package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"study-planner/internal/model"
)

// RecurringRepository manages weekly schedule templates.
type RecurringRepository struct {
	db *gorm.DB
}

func NewRecurringRepository(db *gorm.DB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

func (r *RecurringRepository) Create(ctx context.Context, template *model.RecurringTask) error {
	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		return fmt.Errorf("create recurring task: %w", err)
	}
	return nil
}

// ListForDay returns the templates for one weekday (MONDAY .. SUNDAY),
// ordered by time.
func (r *RecurringRepository) ListForDay(ctx context.Context, userID uint, dayOfWeek string) ([]model.RecurringTask, error) {
	var templates []model.RecurringTask
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_of_week = ?", userID, dayOfWeek).
		Order("scheduled_time ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// DeleteAllForUser wipes a user's templates before a fresh import.
func (r *RecurringRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Delete(&model.RecurringTask{}).Error; err != nil {
		return fmt.Errorf("delete recurring tasks: %w", err)
	}
	return nil
}
