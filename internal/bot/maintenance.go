package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RunDailyMaintenance materializes today's tasks for every known user and
// re-arms their reminders. Wired to the daily cron job; safe to run twice
// because the materializer is idempotent.
func (b *Bot) RunDailyMaintenance(ctx context.Context) {
	log.Println("[info] daily maintenance started")

	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		log.Printf("daily maintenance: list users: %v", err)
		return
	}

	today := b.clk.TodayKey()
	for i := range users {
		user := &users[i]
		created, err := b.materializeSvc.Materialize(ctx, user.ID, today)
		if err != nil {
			log.Printf("daily maintenance: user %d: %v", user.ID, err)
			continue
		}
		b.scheduleRemindersForDay(ctx, user, today)

		if created > 0 && user.NotificationsEnabled {
			text := fmt.Sprintf("☀️ Good morning! I've added %d tasks from your recurring schedule.", created)
			if err := b.sendPlain(user.TelegramID, text); err != nil {
				log.Printf("daily maintenance: greet %d: %v", user.TelegramID, err)
			}
		}
	}

	log.Printf("[info] daily maintenance finished users=%d", len(users))
}

// handleSync is the /sync command: run today's materialization on demand.
func (b *Bot) handleSync(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	today := b.clk.TodayKey()
	created, err := b.materializeSvc.Materialize(ctx, user.ID, today)
	if err != nil {
		log.Printf("sync for %d: %v", user.TelegramID, err)
		return b.sendText(msg.Chat.ID, "❌ Sync failed. Please try again.", mainMenuKeyboard())
	}
	b.scheduleRemindersForDay(ctx, user, today)

	return b.sendText(msg.Chat.ID,
		fmt.Sprintf("🔄 Synced: Generated %d tasks from your schedule.", created),
		mainMenuKeyboard())
}
