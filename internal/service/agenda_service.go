package service

import (
	"context"
	"time"

	"study-planner/internal/clock"
	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// Look-back window for "what should I be doing now".
const currentTaskWindow = 2 * time.Hour

// AgendaService answers "what now", "what's next" and "what did I miss"
// against a user's dated tasks.
type AgendaService struct {
	clk        *clock.Clock
	taskRepo   *repository.TaskRepository
	classifier *clock.Classifier
}

func NewAgendaService(clk *clock.Clock, taskRepo *repository.TaskRepository, classifier *clock.Classifier) *AgendaService {
	return &AgendaService{clk: clk, taskRepo: taskRepo, classifier: classifier}
}

// CurrentTask returns the task the user should be doing right now, with how
// long it has been running. A task qualifies when it started within the last
// two hours and is not done. Returns nil when nothing is active.
func (s *AgendaService) CurrentTask(ctx context.Context, userID uint, dateKey string, now time.Time) (*model.Task, time.Duration, error) {
	nowKey := now.Format(clock.TimeLayout)
	windowStart := now.Add(-currentTaskWindow).Format(clock.TimeLayout)

	task, err := s.taskRepo.FindCurrentWithin(ctx, userID, dateKey, windowStart, nowKey)
	if err != nil {
		return nil, 0, err
	}
	if task == nil {
		return nil, 0, nil
	}
	// Guard against clock skew: never report a task that has not started.
	if task.ScheduledTime > nowKey {
		return nil, 0, nil
	}

	tod, err := clock.ParseTimeOfDay(task.ScheduledTime)
	if err != nil {
		return nil, 0, err
	}
	start, err := s.clk.Instant(dateKey, tod)
	if err != nil {
		return nil, 0, err
	}
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return nil, 0, nil
	}
	return task, elapsed, nil
}

// NextTask returns the earliest not-done task strictly after now, fillers
// included. Nil when the day has nothing left.
func (s *AgendaService) NextTask(ctx context.Context, userID uint, dateKey, nowKey string) (*model.Task, error) {
	return s.taskRepo.FindNextAfter(ctx, userID, dateKey, nowKey)
}

// NextRealTask is NextTask restricted to real work: commutes and meals never
// show up as "what's next".
func (s *AgendaService) NextRealTask(ctx context.Context, userID uint, dateKey, nowKey string) (*model.Task, error) {
	tasks, err := s.taskRepo.ListByDate(ctx, userID, dateKey)
	if err != nil {
		return nil, err
	}
	for _, t := range s.classifier.FilterReal(tasks) {
		if t.ScheduledTime > nowKey && !t.Done() {
			task := t
			return &task, nil
		}
	}
	return nil, nil
}

// IncompleteTasks returns pending tasks whose time has passed, ascending.
// The raw list includes fillers; callers filter for display.
func (s *AgendaService) IncompleteTasks(ctx context.Context, userID uint, dateKey, nowKey string) ([]model.Task, error) {
	return s.taskRepo.ListIncompleteBefore(ctx, userID, dateKey, nowKey)
}
