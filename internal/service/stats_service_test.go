package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner/internal/clock"
	"study-planner/internal/model"
	"study-planner/internal/repository"
)

func newStatsService(t *testing.T) (*StatsService, uint, func(date, timeKey, name, status string)) {
	t.Helper()
	db := newTestDB(t)
	user := newTestUser(t, db, 200)
	svc := NewStatsService(testClock(), repository.NewTaskRepository(db), clock.NewClassifier())
	seed := func(date, timeKey, name, status string) {
		seedTask(t, db, user.ID, date, timeKey, name, status)
	}
	return svc, user.ID, seed
}

// Clock is pinned to 2026-03-12.
const statsToday = "2026-03-12"

func TestStreakStopsAtFirstIncompleteDay(t *testing.T) {
	svc, userID, seed := newStatsService(t)

	// today 2/2, yesterday 3/3, day-2 1/2, day-3 5/5 -> streak 2
	seed(statsToday, "09:00", "A1", model.StatusDone)
	seed(statsToday, "10:00", "A2", model.StatusDone)

	seed("2026-03-11", "09:00", "B1", model.StatusDone)
	seed("2026-03-11", "10:00", "B2", model.StatusDone)
	seed("2026-03-11", "11:00", "B3", model.StatusDone)

	seed("2026-03-10", "09:00", "C1", model.StatusDone)
	seed("2026-03-10", "10:00", "C2", model.StatusPending)

	for _, timeKey := range []string{"09:00", "10:00", "11:00", "12:00", "13:00"} {
		seed("2026-03-09", timeKey, "D"+timeKey, model.StatusDone)
	}

	stats, err := svc.UserStats(context.Background(), userID, statsToday)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Streak)
}

func TestStreakSkipsInProgressToday(t *testing.T) {
	svc, userID, seed := newStatsService(t)

	// Today is 1/2: it neither breaks nor extends the streak.
	seed(statsToday, "09:00", "A1", model.StatusDone)
	seed(statsToday, "10:00", "A2", model.StatusPending)

	seed("2026-03-11", "09:00", "B1", model.StatusDone)
	seed("2026-03-10", "09:00", "C1", model.StatusDone)

	stats, err := svc.UserStats(context.Background(), userID, statsToday)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Streak)
}

func TestStreakIgnoresFillerOnlyDays(t *testing.T) {
	svc, userID, seed := newStatsService(t)

	seed(statsToday, "09:00", "A1", model.StatusDone)
	// A day of nothing but commutes: transparent for the streak.
	seed("2026-03-11", "08:00", "🚌 Commute", model.StatusPending)
	seed("2026-03-11", "18:00", "🚌 Road Home", model.StatusPending)
	seed("2026-03-10", "09:00", "C1", model.StatusDone)

	stats, err := svc.UserStats(context.Background(), userID, statsToday)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Streak)
}

func TestStatsExcludeFillerTasks(t *testing.T) {
	svc, userID, seed := newStatsService(t)

	seed(statsToday, "09:00", "IELTS reading", model.StatusDone)
	seed(statsToday, "13:00", "🍽️ Lunch", model.StatusDone)
	seed(statsToday, "15:00", "SAT practice", model.StatusPending)
	seed("2026-03-01", "10:00", "🚶 Commute", model.StatusDone)

	stats, err := svc.UserStats(context.Background(), userID, statsToday)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TodayTotal, "lunch must not count")
	assert.Equal(t, 1, stats.TodayDone)
	assert.Equal(t, 1, stats.TotalCompleted, "completed commute must not count")
}

func TestStatsEmptyHistory(t *testing.T) {
	svc, userID, _ := newStatsService(t)

	stats, err := svc.UserStats(context.Background(), userID, statsToday)
	require.NoError(t, err)
	assert.Zero(t, stats.TodayTotal)
	assert.Zero(t, stats.Streak)
	assert.Zero(t, stats.TotalCompleted)
}
