package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"study-planner/internal/clock"
)

func reminderTime(hour, minute int) time.Time {
	loc := time.FixedZone("UTC+5", 5*3600)
	return time.Date(2026, 3, 12, hour, minute, 0, 0, loc)
}

func kinds(reminders []pendingReminder) []ReminderKind {
	out := make([]ReminderKind, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, r.kind)
	}
	return out
}

func TestPendingRemindersAllAhead(t *testing.T) {
	now := reminderTime(10, 0)
	start := reminderTime(13, 0)

	upcoming := pendingReminders(now, start)
	assert.ElementsMatch(t, []ReminderKind{RemindStart, Remind1h, Remind30m}, kinds(upcoming))
}

func TestPendingRemindersPartiallyElapsed(t *testing.T) {
	now := reminderTime(10, 0)

	// 45 minutes ahead: the 1h lead is already gone.
	upcoming := pendingReminders(now, reminderTime(10, 45))
	assert.ElementsMatch(t, []ReminderKind{RemindStart, Remind30m}, kinds(upcoming))

	// 20 minutes ahead: only the start reminder survives.
	upcoming = pendingReminders(now, reminderTime(10, 20))
	assert.ElementsMatch(t, []ReminderKind{RemindStart}, kinds(upcoming))
}

func TestPendingRemindersAllInThePast(t *testing.T) {
	now := reminderTime(10, 0)

	// A task that started 10 minutes ago arms nothing: the lead candidates
	// are even further in the past.
	upcoming := pendingReminders(now, reminderTime(9, 50))
	assert.Empty(t, upcoming)
}

func TestPendingRemindersExactStartNotArmed(t *testing.T) {
	now := reminderTime(10, 0)

	// Strictly-in-the-future rule: a candidate equal to now is skipped.
	upcoming := pendingReminders(now, reminderTime(10, 0))
	assert.Empty(t, upcoming)

	upcoming = pendingReminders(now, reminderTime(10, 30))
	assert.ElementsMatch(t, []ReminderKind{RemindStart}, kinds(upcoming))
}

type recordingNotifier struct {
	fired chan ReminderKind
}

func (n *recordingNotifier) Notify(chatID int64, taskName string, kind ReminderKind) {
	n.fired <- kind
}

func TestScheduleFiresNotifier(t *testing.T) {
	notifier := &recordingNotifier{fired: make(chan ReminderKind, 3)}
	// Pin "now" one second before the task's start so a single timer arms
	// and fires almost immediately.
	clk := clock.NewAt(5, func() time.Time {
		return time.Date(2026, 3, 12, 5, 30, 59, 0, time.UTC)
	})
	svc := NewReminderScheduler(clk, notifier)

	svc.Schedule(42, "IELTS reading", mustTimeOfDay(t, "10:31"), "2026-03-12")

	select {
	case kind := <-notifier.fired:
		assert.Equal(t, RemindStart, kind)
	case <-time.After(3 * time.Second):
		t.Fatal("reminder never fired")
	}
}

func TestScheduleArmsNothingForPastTask(t *testing.T) {
	notifier := &recordingNotifier{fired: make(chan ReminderKind, 3)}
	svc := NewReminderScheduler(testClock(), notifier)

	svc.Schedule(42, "IELTS reading", mustTimeOfDay(t, "10:20"), "2026-03-12")

	select {
	case kind := <-notifier.fired:
		t.Fatalf("unexpected reminder %q", kind)
	case <-time.After(100 * time.Millisecond):
	}
}
