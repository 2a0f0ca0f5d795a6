package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"study-planner/internal/clock"
	"study-planner/internal/service"
)

type conversationStage int

const (
	stageName conversationStage = iota
	stageTime
	stagePriority
	stageCategory
)

// conversationState tracks a multi-step add-task dialog for one chat.
type conversationState struct {
	stage     conversationStage
	chatID    int64
	messageID int

	name     string
	time     clock.TimeOfDay
	priority string
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) conversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

func (b *Bot) startAddTask(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if _, err := b.ensureUser(ctx, cb.From); err != nil {
		return b.failView(cb, "the task form", err)
	}

	b.setConversation(cb.From.ID, &conversationState{
		stage:     stageName,
		chatID:    cb.Message.Chat.ID,
		messageID: cb.Message.MessageID,
	})
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
		"📝 <b>New task</b>\n\nSend me the task name.", cancelAddKeyboard())
}

// handleConversationText consumes free-text input while a dialog is active.
// The name stage takes any text; the time stage accepts a typed HH:MM as an
// alternative to the picker.
func (b *Bot) handleConversationText(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.conversation(msg.From.ID)
	if state == nil {
		return nil
	}

	switch state.stage {
	case stageName:
		state.name = msg.Text
		state.stage = stageTime
		return b.sendText(msg.Chat.ID,
			fmt.Sprintf("⏰ When should <b>%s</b> start? Pick a time or type HH:MM.", escape(state.name)),
			timePickerKeyboard())
	case stageTime:
		tod, err := clock.ParseTimeOfDay(msg.Text)
		if err != nil {
			return b.sendText(msg.Chat.ID,
				"❌ Invalid format. Use HH:MM (e.g., 15:30).", timePickerKeyboard())
		}
		state.time = tod
		state.stage = stagePriority
		return b.sendText(msg.Chat.ID, "🎯 How important is it?", priorityKeyboard())
	default:
		return b.sendText(msg.Chat.ID, "Use the buttons to continue, or /cancel.", cancelAddKeyboard())
	}
}

func (b *Bot) pickTime(cb *tgbotapi.CallbackQuery, arg string) error {
	state := b.conversation(cb.From.ID)
	if state == nil || state.stage != stageTime {
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"🏠 <b>Main Menu</b>", mainMenuKeyboard())
	}

	tod, err := clock.ParseTimeOfDay(arg)
	if err != nil {
		log.Printf("bad time button %q: %v", arg, err)
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"❌ Invalid format. Use HH:MM (e.g., 15:30).", timePickerKeyboard())
	}
	state.time = tod
	state.stage = stagePriority
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
		"🎯 How important is it?", priorityKeyboard())
}

func (b *Bot) pickPriority(cb *tgbotapi.CallbackQuery, arg string) error {
	state := b.conversation(cb.From.ID)
	if state == nil || state.stage != stagePriority {
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"🏠 <b>Main Menu</b>", mainMenuKeyboard())
	}

	state.priority = arg
	state.stage = stageCategory
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
		"📂 Which category?", categoryKeyboard())
}

func (b *Bot) finishAddTask(ctx context.Context, cb *tgbotapi.CallbackQuery, category string) error {
	state := b.conversation(cb.From.ID)
	if state == nil || state.stage != stageCategory {
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"🏠 <b>Main Menu</b>", mainMenuKeyboard())
	}

	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return b.failView(cb, "the task form", err)
	}

	today := b.clk.TodayKey()
	task, err := b.taskSvc.CreateTask(ctx, user, service.TaskInput{
		Name:          state.name,
		ScheduledTime: state.time,
		Priority:      state.priority,
		Category:      category,
		Date:          today,
	})
	if err != nil {
		return b.failView(cb, "the task form", err)
	}

	if b.reminders != nil && !task.Done() {
		b.reminders.Schedule(user.TelegramID, task.Name, state.time, today)
	}
	b.clearConversation(cb.From.ID)

	text := fmt.Sprintf("✅ Added <b>%s</b> at %s (%s %s).",
		escape(task.Name), task.ScheduledTime, priorityIcon(task.Priority), escape(category))
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID, text, mainMenuKeyboard())
}

// stepBack rewinds the dialog one stage.
func (b *Bot) stepBack(cb *tgbotapi.CallbackQuery) error {
	state := b.conversation(cb.From.ID)
	if state == nil {
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"🏠 <b>Main Menu</b>", mainMenuKeyboard())
	}

	switch state.stage {
	case stageTime:
		state.stage = stageName
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"📝 <b>New task</b>\n\nSend me the task name.", cancelAddKeyboard())
	case stagePriority:
		state.stage = stageTime
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"⏰ When should it start? Pick a time or type HH:MM.", timePickerKeyboard())
	case stageCategory:
		state.stage = stagePriority
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"🎯 How important is it?", priorityKeyboard())
	default:
		b.clearConversation(cb.From.ID)
		return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
			"🏠 <b>Main Menu</b>", mainMenuKeyboard())
	}
}
