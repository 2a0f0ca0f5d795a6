package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"study-planner/internal/clock"
	"study-planner/internal/model"
	"study-planner/internal/service"
)

// Notify delivers a due reminder to the chat. Implements service.Notifier.
// Reminders are dropped silently when the user disabled them or the local
// time falls inside their quiet hours.
func (b *Bot) Notify(chatID int64, taskName string, kind service.ReminderKind) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := b.userRepo.FindByTelegramID(ctx, chatID)
	if err != nil {
		log.Printf("notify %d: %v", chatID, err)
		return
	}
	if !user.NotificationsEnabled {
		return
	}
	if inQuietHours(user, b.clk.NowKey()) {
		log.Printf("[info] reminder suppressed by quiet hours chat=%d task=%q", chatID, taskName)
		return
	}

	if err := b.sendPlain(chatID, reminderText(taskName, kind)); err != nil {
		log.Printf("notify %d: %v", chatID, err)
	}
}

func reminderText(taskName string, kind service.ReminderKind) string {
	// Commutes read better as "before you leave"; work reads as "until start".
	relation := "until"
	if clock.IsCommute(taskName) {
		relation = "before"
	}

	switch kind {
	case service.Remind1h:
		return fmt.Sprintf("⏰ 1 hour %s: %s", relation, taskName)
	case service.Remind30m:
		return fmt.Sprintf("⚠️ 30 minutes %s: %s", relation, taskName)
	default:
		return fmt.Sprintf("🚀 Time to start: %s", taskName)
	}
}

// inQuietHours reports whether nowKey falls inside the user's quiet window.
// A window wrapping midnight (e.g. 23:00–07:00) is honored.
func inQuietHours(user *model.User, nowKey string) bool {
	if user.QuietHoursStart == nil || user.QuietHoursEnd == nil {
		return false
	}
	start, end := *user.QuietHoursStart, *user.QuietHoursEnd
	if start == end {
		return false
	}
	if start < end {
		return nowKey >= start && nowKey < end
	}
	return nowKey >= start || nowKey < end
}
