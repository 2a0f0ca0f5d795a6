package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"study-planner/internal/clock"
	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// Each test gets its own named in-memory SQLite database so schemas and rows
// never leak between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, telegramID int64) *model.User {
	t.Helper()
	user, err := repository.NewUserRepository(db).
		UpsertFromTelegram(context.Background(), telegramID, "Aset", "aset", 5)
	require.NoError(t, err)
	return user
}

// testClock pins "now" to a known instant: 2026-03-12 10:30 at UTC+5.
func testClock() *clock.Clock {
	return clock.NewAt(5, func() time.Time {
		return time.Date(2026, 3, 12, 5, 30, 0, 0, time.UTC)
	})
}

func mustTimeOfDay(t *testing.T, s string) clock.TimeOfDay {
	t.Helper()
	tod, err := clock.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func seedTask(t *testing.T, db *gorm.DB, userID uint, date, timeKey, name, status string) model.Task {
	t.Helper()
	task := model.Task{
		UserID:        userID,
		Name:          name,
		ScheduledTime: timeKey,
		Priority:      model.PriorityMedium,
		Category:      "Other",
		Status:        status,
		Date:          date,
	}
	require.NoError(t, repository.NewTaskRepository(db).Create(context.Background(), &task))
	return task
}
