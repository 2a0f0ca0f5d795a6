package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"study-planner/internal/model"
)

// TaskRepository handles CRUD and the time-ordered queries over dated tasks.
// Scheduled times are HH:MM strings, so lexicographic comparison in SQL is
// chronological comparison.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListByDate returns the full day plan, fillers included, ordered by time.
func (r *TaskRepository) ListByDate(ctx context.Context, userID uint, date string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND archived = ?", userID, date, false).
		Order("scheduled_time ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListByDateRange(ctx context.Context, userID uint, startDate, endDate string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ? AND archived = ?", userID, startDate, endDate, false).
		Order("date ASC, scheduled_time ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Exists reports whether a task with this name is already present for the
// user and date. The materializer's idempotency check.
func (r *TaskRepository) Exists(ctx context.Context, userID uint, date, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND date = ? AND name = ?", userID, date, name).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check task exists: %w", err)
	}
	return count > 0, nil
}

// UpdateStatus is a single-statement status change, atomic per call.
func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID uint, status string) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return nil
}

func (r *TaskRepository) UpdateFields(ctx context.Context, taskID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (r *TaskRepository) SetArchived(ctx context.Context, taskID uint, archived bool) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Update("archived", archived).Error; err != nil {
		return fmt.Errorf("archive task: %w", err)
	}
	return nil
}

// ListIncompleteBefore returns pending tasks whose time has already passed,
// ascending. Fillers are included; display layers filter them out.
func (r *TaskRepository) ListIncompleteBefore(ctx context.Context, userID uint, date, timeKey string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND status = ? AND scheduled_time < ?",
			userID, date, model.StatusPending, timeKey).
		Order("scheduled_time ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindCurrentWithin returns the latest non-done task scheduled inside
// [windowStart, timeKey], or nil when there is none. Equal-time ties fall to
// whichever row the store yields first.
func (r *TaskRepository) FindCurrentWithin(ctx context.Context, userID uint, date, windowStart, timeKey string) (*model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND scheduled_time >= ? AND scheduled_time <= ? AND status <> ?",
			userID, date, windowStart, timeKey, model.StatusDone).
		Order("scheduled_time DESC").
		Limit(1).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

// FindNextAfter returns the earliest non-done task strictly after timeKey,
// or nil when the day has nothing left.
func (r *TaskRepository) FindNextAfter(ctx context.Context, userID uint, date, timeKey string) (*model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND scheduled_time > ? AND status <> ?",
			userID, date, timeKey, model.StatusDone).
		Order("scheduled_time ASC").
		Limit(1).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

// ListDates returns the distinct dates with any tasks up to and including
// upTo, newest first. Drives the streak scan.
func (r *TaskRepository) ListDates(ctx context.Context, userID uint, upTo string) ([]string, error) {
	var dates []string
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Distinct("date").
		Where("user_id = ? AND date <= ?", userID, upTo).
		Order("date DESC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *TaskRepository) ListCompleted(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.StatusDone).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
