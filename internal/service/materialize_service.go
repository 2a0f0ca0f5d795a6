package service

import (
	"context"
	"log"

	"study-planner/internal/clock"
	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// MaterializeService expands recurring weekly templates into concrete dated
// tasks. Safe to call repeatedly for the same (user, date): the name-based
// existence check plus the store's unique index keep it idempotent. An ad-hoc
// task with the same name suppresses materialization of that template, which
// is a known limitation of name-based matching.
type MaterializeService struct {
	taskRepo      *repository.TaskRepository
	recurringRepo *repository.RecurringRepository
}

func NewMaterializeService(taskRepo *repository.TaskRepository, recurringRepo *repository.RecurringRepository) *MaterializeService {
	return &MaterializeService{taskRepo: taskRepo, recurringRepo: recurringRepo}
}

// Materialize creates today's tasks from the templates matching the weekday
// of dateKey and returns how many rows were newly created.
func (s *MaterializeService) Materialize(ctx context.Context, userID uint, dateKey string) (int, error) {
	dayName, err := clock.WeekdayName(dateKey)
	if err != nil {
		return 0, err
	}

	templates, err := s.recurringRepo.ListForDay(ctx, userID, dayName)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, tpl := range templates {
		exists, err := s.taskRepo.Exists(ctx, userID, dateKey, tpl.Name)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		task := model.Task{
			UserID:        userID,
			Name:          tpl.Name,
			ScheduledTime: tpl.ScheduledTime,
			Priority:      tpl.Priority,
			Category:      tpl.Category,
			Status:        model.StatusPending,
			Date:          dateKey,
			Duration:      0,
		}
		if err := s.taskRepo.Create(ctx, &task); err != nil {
			return created, err
		}
		created++
	}

	if created > 0 {
		log.Printf("[info] materialized %d tasks user=%d date=%s", created, userID, dateKey)
	}
	return created, nil
}
