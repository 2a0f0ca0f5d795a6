package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"study-planner/internal/clock"
	"study-planner/internal/model"
	"study-planner/internal/repository"
)

func newAgendaService(t *testing.T) (*AgendaService, *gorm.DB, uint) {
	t.Helper()
	db := newTestDB(t)
	user := newTestUser(t, db, 300)
	svc := NewAgendaService(testClock(), repository.NewTaskRepository(db), clock.NewClassifier())
	return svc, db, user.ID
}

func localTime(hour, minute int) time.Time {
	loc := time.FixedZone("UTC+5", 5*3600)
	return time.Date(2026, 3, 12, hour, minute, 0, 0, loc)
}

func TestCurrentTaskWithinWindow(t *testing.T) {
	svc, db, userID := newAgendaService(t)
	seedTask(t, db, userID, "2026-03-12", "09:00", "IELTS reading", model.StatusPending)

	// 10:30 - started 1.5h ago, inside the 2h window.
	task, elapsed, err := svc.CurrentTask(context.Background(), userID, "2026-03-12", localTime(10, 30))
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "IELTS reading", task.Name)
	assert.Equal(t, 90*time.Minute, elapsed)
}

func TestCurrentTaskOutsideWindow(t *testing.T) {
	svc, db, userID := newAgendaService(t)
	seedTask(t, db, userID, "2026-03-12", "09:00", "IELTS reading", model.StatusPending)

	// 11:30 - 2.5h elapsed, past the window.
	task, _, err := svc.CurrentTask(context.Background(), userID, "2026-03-12", localTime(11, 30))
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestCurrentTaskPrefersLatestStart(t *testing.T) {
	svc, db, userID := newAgendaService(t)
	seedTask(t, db, userID, "2026-03-12", "09:00", "Earlier", model.StatusPending)
	seedTask(t, db, userID, "2026-03-12", "10:00", "Later", model.StatusPending)

	task, elapsed, err := svc.CurrentTask(context.Background(), userID, "2026-03-12", localTime(10, 30))
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "Later", task.Name)
	assert.Equal(t, 30*time.Minute, elapsed)
}

func TestCurrentTaskIgnoresDone(t *testing.T) {
	svc, db, userID := newAgendaService(t)
	seedTask(t, db, userID, "2026-03-12", "10:00", "Finished already", model.StatusDone)

	task, _, err := svc.CurrentTask(context.Background(), userID, "2026-03-12", localTime(10, 30))
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestNextTaskReturnsEarliestUpcoming(t *testing.T) {
	svc, db, userID := newAgendaService(t)
	seedTask(t, db, userID, "2026-03-12", "09:00", "Past", model.StatusPending)
	seedTask(t, db, userID, "2026-03-12", "14:00", "Second", model.StatusPending)
	seedTask(t, db, userID, "2026-03-12", "12:00", "First", model.StatusPending)
	seedTask(t, db, userID, "2026-03-12", "11:00", "Done soon", model.StatusDone)

	task, err := svc.NextTask(context.Background(), userID, "2026-03-12", "10:30")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "First", task.Name)
}

func TestNextRealTaskSkipsFillers(t *testing.T) {
	svc, db, userID := newAgendaService(t)
	seedTask(t, db, userID, "2026-03-12", "13:00", "🍽️ Lunch", model.StatusPending)
	seedTask(t, db, userID, "2026-03-12", "14:00", "SAT practice", model.StatusPending)

	task, err := svc.NextRealTask(context.Background(), userID, "2026-03-12", "12:00")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "SAT practice", task.Name)

	// The raw next task is still the lunch entry.
	raw, err := svc.NextTask(context.Background(), userID, "2026-03-12", "12:00")
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, "🍽️ Lunch", raw.Name)
}

func TestIncompleteTasksAscendingPendingOnly(t *testing.T) {
	svc, db, userID := newAgendaService(t)
	seedTask(t, db, userID, "2026-03-12", "08:00", "Missed early", model.StatusPending)
	seedTask(t, db, userID, "2026-03-12", "09:00", "Completed", model.StatusDone)
	seedTask(t, db, userID, "2026-03-12", "10:00", "Missed late", model.StatusPending)
	seedTask(t, db, userID, "2026-03-12", "15:00", "Future", model.StatusPending)

	tasks, err := svc.IncompleteTasks(context.Background(), userID, "2026-03-12", "10:30")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Missed early", tasks[0].Name)
	assert.Equal(t, "Missed late", tasks[1].Name)
}
