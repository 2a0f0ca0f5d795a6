package service

import (
	"log"
	"time"

	"study-planner/internal/clock"
)

// ReminderKind distinguishes the three one-shot notifications per task.
type ReminderKind string

const (
	RemindStart ReminderKind = "start"
	Remind30m   ReminderKind = "30m"
	Remind1h    ReminderKind = "1h"
)

// Notifier receives fired reminders. The bot implements it; tests fake it.
type Notifier interface {
	Notify(chatID int64, taskName string, kind ReminderKind)
}

// ReminderScheduler arms in-memory one-shot timers for a task's start time
// and the 30-minute and 1-hour leads. Timers are not persisted: a restart
// drops them, and the daily maintenance re-arms whatever is still ahead.
// There is no cancellation and no dedup across calls; the only filter is
// "already past at scheduling time".
type ReminderScheduler struct {
	clk      *clock.Clock
	notifier Notifier
}

func NewReminderScheduler(clk *clock.Clock, notifier Notifier) *ReminderScheduler {
	return &ReminderScheduler{clk: clk, notifier: notifier}
}

type pendingReminder struct {
	kind ReminderKind
	at   time.Time
}

// pendingReminders returns the candidates strictly in the future. Candidates
// already in the past are skipped silently, never fired immediately.
func pendingReminders(now, start time.Time) []pendingReminder {
	candidates := []pendingReminder{
		{kind: RemindStart, at: start},
		{kind: Remind1h, at: start.Add(-time.Hour)},
		{kind: Remind30m, at: start.Add(-30 * time.Minute)},
	}
	var upcoming []pendingReminder
	for _, c := range candidates {
		if c.at.After(now) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming
}

// Schedule arms up to three timers for the task. Called for newly created
// tasks and re-invoked for every task during daily maintenance.
func (s *ReminderScheduler) Schedule(chatID int64, taskName string, tod clock.TimeOfDay, dateKey string) {
	start, err := s.clk.Instant(dateKey, tod)
	if err != nil {
		log.Printf("schedule reminders for %q: %v", taskName, err)
		return
	}

	now := s.clk.Now()
	for _, p := range pendingReminders(now, start) {
		kind := p.kind
		time.AfterFunc(p.at.Sub(now), func() {
			s.notifier.Notify(chatID, taskName, kind)
		})
	}
}
