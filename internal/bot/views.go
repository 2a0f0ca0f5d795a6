package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"study-planner/internal/clock"
	"study-planner/internal/model"
)

func (b *Bot) showWhatNow(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return b.failView(cb, "your schedule", err)
	}

	today := b.clk.TodayKey()
	if err := b.materializeIfEmpty(ctx, user, today); err != nil {
		return b.failView(cb, "your schedule", err)
	}

	now := b.clk.Now()
	current, elapsed, err := b.agendaSvc.CurrentTask(ctx, user.ID, today, now)
	if err != nil {
		return b.failView(cb, "your schedule", err)
	}

	if current != nil {
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			b.currentTaskText(current, elapsed), whatNowKeyboard())
	}

	next, err := b.agendaSvc.NextTask(ctx, user.ID, today, b.clk.NowKey())
	if err != nil {
		return b.failView(cb, "your schedule", err)
	}
	if next != nil {
		text := fmt.Sprintf("⏰ <b>Next task</b>: %s at %s", escape(next.Name), next.ScheduledTime)
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID, text, whatNowKeyboard())
	}

	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
		"✅ No active tasks right now. Great job!", whatNowKeyboard())
}

func (b *Bot) currentTaskText(task *model.Task, elapsed time.Duration) string {
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60

	if clock.IsCommute(task.Name) {
		name := strings.TrimLeft(task.Name, "🚶🚕🚌 ")
		return fmt.Sprintf("🚶 <b>You're on the way</b>: %s\nStay safe!", escape(name))
	}

	switch {
	case hours > 0:
		return fmt.Sprintf("🔥 <b>You should be doing</b>: %s\nfor %d hours and %d minutes already", escape(task.Name), hours, minutes)
	default:
		return fmt.Sprintf("🔥 <b>You should be doing</b>: %s\nfor %d minutes already", escape(task.Name), minutes)
	}
}

func (b *Bot) showWhatsNext(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return b.failView(cb, "upcoming tasks", err)
	}

	today := b.clk.TodayKey()
	next, err := b.agendaSvc.NextRealTask(ctx, user.ID, today, b.clk.NowKey())
	if err != nil {
		return b.failView(cb, "upcoming tasks", err)
	}
	if next == nil {
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"🎉 Nothing else on the schedule today. You're free!", whatNowKeyboard())
	}

	text := fmt.Sprintf("📌 <b>Up next</b>: %s at %s", escape(next.Name), next.ScheduledTime)
	if tod, perr := clock.ParseTimeOfDay(next.ScheduledTime); perr == nil {
		if start, ierr := b.clk.Instant(today, tod); ierr == nil {
			until := start.Sub(b.clk.Now())
			if until > 0 {
				text += fmt.Sprintf("\n⏳ In %dh %dm", int(until.Hours()), int(until.Minutes())%60)
			}
		}
	}
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID, text, whatNowKeyboard())
}

func (b *Bot) showIncomplete(ctx context.Context, cb *tgbotapi.CallbackQuery, missedView bool) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return b.failView(cb, "missed tasks", err)
	}

	tasks, err := b.agendaSvc.IncompleteTasks(ctx, user.ID, b.clk.TodayKey(), b.clk.NowKey())
	if err != nil {
		return b.failView(cb, "missed tasks", err)
	}
	real := b.classifier.FilterReal(tasks)

	if len(real) == 0 {
		text := "✅ Nothing missed so far. Keep it up!"
		if !missedView {
			text = "✅ No incomplete tasks. You're on track!"
		}
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID, text, whatNowKeyboard())
	}

	var sb strings.Builder
	if missedView {
		sb.WriteString("😬 <b>You missed</b>:\n\n")
	} else {
		sb.WriteString("📋 <b>Still pending</b>:\n\n")
	}
	for _, t := range real {
		fmt.Fprintf(&sb, "⏰ %s %s %s\n", t.ScheduledTime, priorityIcon(t.Priority), escape(t.Name))
	}
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID, sb.String(), whatNowKeyboard())
}

func (b *Bot) showToday(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return b.failView(cb, "today's plan", err)
	}

	today := b.clk.TodayKey()
	if err := b.materializeIfEmpty(ctx, user, today); err != nil {
		return b.failView(cb, "today's plan", err)
	}

	tasks, err := b.taskSvc.ListForDate(ctx, user.ID, today)
	if err != nil {
		return b.failView(cb, "today's plan", err)
	}
	if len(tasks) == 0 {
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"📅 Nothing planned for today yet. Add a task or /sync your schedule.", backOnlyKeyboard())
	}

	text := fmt.Sprintf("📅 <b>Today — %s</b>\n\n%s", today, taskListText(tasks))
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID, text, backOnlyKeyboard())
}

func (b *Bot) showTomorrow(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return b.failView(cb, "tomorrow's plan", err)
	}

	tomorrow := b.clk.TomorrowKey()
	tasks, err := b.taskSvc.ListForDate(ctx, user.ID, tomorrow)
	if err != nil {
		return b.failView(cb, "tomorrow's plan", err)
	}

	if len(tasks) > 0 {
		text := fmt.Sprintf("📆 <b>Tomorrow — %s</b>\n\n%s", tomorrow, taskListText(tasks))
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID, text, backOnlyKeyboard())
	}

	// Not materialized yet: preview the recurring templates instead.
	weekday, err := clock.WeekdayName(tomorrow)
	if err != nil {
		return b.failView(cb, "tomorrow's plan", err)
	}
	templates, err := b.recurringRepo.ListForDay(ctx, user.ID, weekday)
	if err != nil {
		return b.failView(cb, "tomorrow's plan", err)
	}
	if len(templates) == 0 {
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"📆 Tomorrow is empty so far. Enjoy the free day!", backOnlyKeyboard())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📆 <b>Tomorrow — %s</b> (from your schedule)\n\n", tomorrow)
	for _, tpl := range templates {
		fmt.Fprintf(&sb, "⬜ %s %s %s\n", tpl.ScheduledTime, priorityIcon(tpl.Priority), escape(tpl.Name))
	}
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID, sb.String(), backOnlyKeyboard())
}

// handleWeek is the /week command: the current Monday-to-Sunday plan grouped
// by day.
func (b *Bot) handleWeek(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	today := b.clk.TodayKey()
	tasks, err := b.taskSvc.ListForWeek(ctx, user.ID, today)
	if err != nil {
		log.Printf("week view for %d: %v", user.TelegramID, err)
		return b.sendText(msg.Chat.ID, "❌ Couldn't load this week. Please try again.", mainMenuKeyboard())
	}
	if len(tasks) == 0 {
		return b.sendText(msg.Chat.ID, "🗓 Nothing planned this week yet.", mainMenuKeyboard())
	}

	var sb strings.Builder
	sb.WriteString("🗓 <b>This Week</b>\n")
	lastDate := ""
	for _, t := range tasks {
		if t.Date != lastDate {
			lastDate = t.Date
			weekday, werr := clock.WeekdayName(t.Date)
			if werr != nil {
				weekday = ""
			}
			marker := ""
			if t.Date == today {
				marker = " ← today"
			}
			fmt.Fprintf(&sb, "\n<b>%s %s</b>%s\n", weekday, t.Date, marker)
		}
		status := "⬜"
		if t.Done() {
			status = "✅"
		}
		fmt.Fprintf(&sb, "%s %s %s %s\n", status, t.ScheduledTime, priorityIcon(t.Priority), escape(t.Name))
	}
	return b.sendText(msg.Chat.ID, sb.String(), mainMenuKeyboard())
}

func taskListText(tasks []model.Task) string {
	var sb strings.Builder
	for _, t := range tasks {
		status := "⬜"
		if t.Done() {
			status = "✅"
		}
		fmt.Fprintf(&sb, "%s %s %s %s\n", status, t.ScheduledTime, priorityIcon(t.Priority), escape(t.Name))
	}
	return sb.String()
}

func (b *Bot) showMarkDone(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return b.failView(cb, "task list", err)
	}

	tasks, err := b.taskSvc.ListForDate(ctx, user.ID, b.clk.TodayKey())
	if err != nil {
		return b.failView(cb, "task list", err)
	}
	real := b.classifier.FilterReal(tasks)
	if len(real) == 0 {
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"📅 No tasks today. Nothing to mark.", backOnlyKeyboard())
	}

	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
		"✔️ <b>Tap a task to mark it done</b>:", markDoneKeyboard(real))
}

func (b *Bot) markTaskDone(ctx context.Context, cb *tgbotapi.CallbackQuery, arg string) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return b.failView(cb, "task list", err)
	}

	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return b.failView(cb, "task list", fmt.Errorf("parse task id %q: %w", arg, err))
	}

	task, err := b.taskSvc.GetTask(ctx, user.ID, uint(id))
	if err != nil {
		return b.failView(cb, "task list", err)
	}
	if !task.Done() {
		if err := b.taskSvc.MarkDone(ctx, task.ID); err != nil {
			return b.failView(cb, "task list", err)
		}
	}

	// Refresh the list so the checkmark shows immediately.
	return b.showMarkDone(ctx, cb)
}

func (b *Bot) showStats(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return b.failView(cb, "your stats", err)
	}

	stats, err := b.statsSvc.UserStats(ctx, user.ID, b.clk.TodayKey())
	if err != nil {
		return b.failView(cb, "your stats", err)
	}

	text := fmt.Sprintf(
		"📊 <b>Your Stats</b>\n\n"+
			"📅 Today: %d/%d done\n"+
			"🏆 Total completed: %d\n"+
			"🔥 Streak: %d days",
		stats.TodayDone, stats.TodayTotal, stats.TotalCompleted, stats.Streak,
	)
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID, text, backOnlyKeyboard())
}

func (b *Bot) showSettings(ctx context.Context, cb *tgbotapi.CallbackQuery, toggle bool) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return b.failView(cb, "settings", err)
	}

	enabled := user.NotificationsEnabled
	if toggle {
		enabled, err = b.userRepo.ToggleNotifications(ctx, user.ID)
		if err != nil {
			return b.failView(cb, "settings", err)
		}
	}

	state := "🔕 off"
	if enabled {
		state = "🔔 on"
	}
	text := fmt.Sprintf("⚙️ <b>Settings</b>\n\nReminders: %s\nTimezone: UTC%+d", state, b.cfg.TimezoneOffset)
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID, text, settingsKeyboard(enabled))
}

// materializeIfEmpty runs the daily materializer if the user has no tasks for
// the day yet, and arms reminders for anything it created.
func (b *Bot) materializeIfEmpty(ctx context.Context, user *model.User, dateKey string) error {
	tasks, err := b.taskSvc.ListForDate(ctx, user.ID, dateKey)
	if err != nil {
		return err
	}
	if len(tasks) > 0 {
		return nil
	}

	created, err := b.materializeSvc.Materialize(ctx, user.ID, dateKey)
	if err != nil {
		return err
	}
	if created > 0 {
		b.scheduleRemindersForDay(ctx, user, dateKey)
	}
	return nil
}

// scheduleRemindersForDay arms reminder timers for every not-done task on the
// given day. Past candidates are skipped by the scheduler itself.
func (b *Bot) scheduleRemindersForDay(ctx context.Context, user *model.User, dateKey string) {
	if b.reminders == nil {
		return
	}
	tasks, err := b.taskSvc.ListForDate(ctx, user.ID, dateKey)
	if err != nil {
		log.Printf("schedule reminders for %d: %v", user.TelegramID, err)
		return
	}
	for _, t := range tasks {
		if t.Done() {
			continue
		}
		tod, err := clock.ParseTimeOfDay(t.ScheduledTime)
		if err != nil {
			log.Printf("skip reminder for task %d: %v", t.ID, err)
			continue
		}
		b.reminders.Schedule(user.TelegramID, t.Name, tod, dateKey)
	}
}
