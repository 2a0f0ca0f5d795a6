package service

import (
	"context"
	"fmt"

	"study-planner/internal/clock"
	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// TaskInput represents data required to create an ad-hoc task.
type TaskInput struct {
	Name          string
	ScheduledTime clock.TimeOfDay
	Priority      string
	Category      string
	Date          string // YYYY-MM-DD
	Duration      int    // minutes
	Notes         string
}

// TaskService wraps task-level business logic on top of the repository.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("task name is required")
	}
	if input.Date == "" {
		return nil, fmt.Errorf("task date is required")
	}

	task := model.Task{
		UserID:        user.ID,
		Name:          input.Name,
		ScheduledTime: input.ScheduledTime.String(),
		Priority:      input.Priority,
		Category:      input.Category,
		Status:        model.StatusPending,
		Date:          input.Date,
		Duration:      input.Duration,
		Notes:         input.Notes,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListForDate(ctx context.Context, userID uint, dateKey string) ([]model.Task, error) {
	return s.taskRepo.ListByDate(ctx, userID, dateKey)
}

// ListForWeek returns the Monday-to-Sunday plan of the week containing dateKey.
func (s *TaskService) ListForWeek(ctx context.Context, userID uint, dateKey string) ([]model.Task, error) {
	start, err := clock.WeekStartKey(dateKey)
	if err != nil {
		return nil, err
	}
	end, err := clock.WeekEndKey(dateKey)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.ListByDateRange(ctx, userID, start, end)
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, userID, taskID)
}

// MarkDone flips a task from pending to done. The only stored transition.
func (s *TaskService) MarkDone(ctx context.Context, taskID uint) error {
	return s.taskRepo.UpdateStatus(ctx, taskID, model.StatusDone)
}

// UpdateTask applies a partial edit. Only whitelisted columns can change.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint, fields map[string]interface{}) error {
	allowed := map[string]bool{
		"name": true, "scheduled_time": true, "priority": true,
		"category": true, "duration": true, "notes": true, "tags": true,
	}
	for key := range fields {
		if !allowed[key] {
			return fmt.Errorf("field %q is not editable", key)
		}
	}
	return s.taskRepo.UpdateFields(ctx, taskID, fields)
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	return s.taskRepo.Delete(ctx, userID, taskID)
}

func (s *TaskService) ArchiveTask(ctx context.Context, taskID uint) error {
	return s.taskRepo.SetArchived(ctx, taskID, true)
}
