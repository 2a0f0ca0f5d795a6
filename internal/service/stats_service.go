package service

import (
	"context"

	"study-planner/internal/clock"
	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// Stats summarizes a user's completion history. Only real tasks count:
// commutes and meals are invisible to every number here.
type Stats struct {
	TodayTotal     int
	TodayDone      int
	TotalCompleted int
	Streak         int
}

// StatsService computes completion stats and the consecutive-day streak.
type StatsService struct {
	clk        *clock.Clock
	taskRepo   *repository.TaskRepository
	classifier *clock.Classifier
}

func NewStatsService(clk *clock.Clock, taskRepo *repository.TaskRepository, classifier *clock.Classifier) *StatsService {
	return &StatsService{clk: clk, taskRepo: taskRepo, classifier: classifier}
}

// UserStats returns today's done/total, all-time completed and the streak,
// all over real tasks only.
func (s *StatsService) UserStats(ctx context.Context, userID uint, dateKey string) (Stats, error) {
	var stats Stats

	todayTasks, err := s.taskRepo.ListByDate(ctx, userID, dateKey)
	if err != nil {
		return stats, err
	}
	realToday := s.classifier.FilterReal(todayTasks)
	stats.TodayTotal = len(realToday)
	stats.TodayDone = countDone(realToday)

	completed, err := s.taskRepo.ListCompleted(ctx, userID)
	if err != nil {
		return stats, err
	}
	stats.TotalCompleted = len(s.classifier.FilterReal(completed))

	streak, err := s.streak(ctx, userID, dateKey)
	if err != nil {
		return stats, err
	}
	stats.Streak = streak

	return stats, nil
}

// streak counts consecutive fully-completed days backward from today.
// Days with zero real tasks neither break nor extend the streak. Today is
// skipped (not broken on) while it is still in progress; the first past day
// that is not 100% complete ends the count.
func (s *StatsService) streak(ctx context.Context, userID uint, dateKey string) (int, error) {
	dates, err := s.taskRepo.ListDates(ctx, userID, dateKey)
	if err != nil {
		return 0, err
	}

	today := s.clk.TodayKey()
	streak := 0
	for _, date := range dates {
		if date > today {
			continue
		}
		dayTasks, err := s.taskRepo.ListByDate(ctx, userID, date)
		if err != nil {
			return streak, err
		}
		real := s.classifier.FilterReal(dayTasks)
		if len(real) == 0 {
			continue
		}
		done := countDone(real)
		if date == today && done < len(real) {
			continue
		}
		if done == len(real) {
			streak++
			continue
		}
		break
	}
	return streak, nil
}

func countDone(tasks []model.Task) int {
	done := 0
	for _, t := range tasks {
		if t.Done() {
			done++
		}
	}
	return done
}
