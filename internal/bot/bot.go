package bot

import (
	"context"
	"fmt"
	"html"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"study-planner/internal/clock"
	"study-planner/internal/config"
	"study-planner/internal/model"
	"study-planner/internal/repository"
	"study-planner/internal/service"
)

// Bot aggregates the Telegram API with the planner services.
type Bot struct {
	api            *tgbotapi.BotAPI
	cfg            *config.Config
	clk            *clock.Clock
	classifier     *clock.Classifier
	userRepo       *repository.UserRepository
	recurringRepo  *repository.RecurringRepository
	taskSvc        *service.TaskService
	agendaSvc      *service.AgendaService
	statsSvc       *service.StatsService
	materializeSvc *service.MaterializeService
	reminders      *service.ReminderScheduler

	conversations map[int64]*conversationState
	mu            sync.Mutex
}

func New(
	token string,
	cfg *config.Config,
	clk *clock.Clock,
	classifier *clock.Classifier,
	userRepo *repository.UserRepository,
	recurringRepo *repository.RecurringRepository,
	taskSvc *service.TaskService,
	agendaSvc *service.AgendaService,
	statsSvc *service.StatsService,
	materializeSvc *service.MaterializeService,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:            api,
		cfg:            cfg,
		clk:            clk,
		classifier:     classifier,
		userRepo:       userRepo,
		recurringRepo:  recurringRepo,
		taskSvc:        taskSvc,
		agendaSvc:      agendaSvc,
		statsSvc:       statsSvc,
		materializeSvc: materializeSvc,
		conversations:  make(map[int64]*conversationState),
	}, nil
}

// SetReminders wires the reminder scheduler. Done after construction because
// the bot itself is the scheduler's notification sink.
func (b *Bot) SetReminders(reminders *service.ReminderScheduler) {
	b.reminders = reminders
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if b.hasConversation(msg.From.ID) {
		return b.handleConversationText(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "I didn't get that. Use the menu below or /start.", mainMenuKeyboard())
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "sync":
		return b.handleSync(ctx, msg)
	case "week":
		return b.handleWeek(ctx, msg)
	case "time":
		return b.sendText(msg.Chat.ID, b.timeReport(), backOnlyKeyboard())
	case "cancel":
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "❌ Action cancelled.", mainMenuKeyboard())
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. Try /start, /week, /sync or /time.", mainMenuKeyboard())
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	log.Printf("[info] user started the bot telegram_id=%d", user.TelegramID)

	text := fmt.Sprintf(
		"👋 Hi %s! I'm your study accountability bot (UTC%+d).\n"+
			"I turn your weekly schedule into daily tasks, remind you before each one and keep your streak honest.",
		escape(msg.From.FirstName), b.cfg.TimezoneOffset,
	)
	return b.sendText(msg.Chat.ID, text, mainMenuKeyboard())
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}

	action := parseAction(cb.Data)
	log.Printf("[info] menu action %q from %d", cb.Data, cb.From.ID)

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	switch action.kind {
	case actionBackToMenu:
		b.clearConversation(cb.From.ID)
		return b.editMessage(chatID, messageID, "🏠 <b>Main Menu</b>", mainMenuKeyboard())
	case actionWhatNow:
		return b.showWhatNow(ctx, cb)
	case actionWhatsNext:
		return b.showWhatsNext(ctx, cb)
	case actionWhatMissed, actionViewIncomplete:
		return b.showIncomplete(ctx, cb, action.kind == actionWhatMissed)
	case actionViewToday:
		return b.showToday(ctx, cb)
	case actionViewTomorrow:
		return b.showTomorrow(ctx, cb)
	case actionAddTask:
		return b.startAddTask(ctx, cb)
	case actionMarkDone:
		return b.showMarkDone(ctx, cb)
	case actionStats:
		return b.showStats(ctx, cb)
	case actionSettings:
		return b.showSettings(ctx, cb, false)
	case actionToggleNotifications:
		return b.showSettings(ctx, cb, true)
	case actionDebugTime:
		return b.editMessage(chatID, messageID, b.timeReport(), backOnlyKeyboard())
	case actionCancelAdd:
		b.clearConversation(cb.From.ID)
		return b.editMessage(chatID, messageID, "❌ Action cancelled.", mainMenuKeyboard())
	case actionBack:
		return b.stepBack(cb)
	case actionPickTime:
		return b.pickTime(cb, action.arg)
	case actionPickPriority:
		return b.pickPriority(cb, action.arg)
	case actionPickCategory:
		return b.finishAddTask(ctx, cb, action.arg)
	case actionTaskDone:
		return b.markTaskDone(ctx, cb, action.arg)
	case actionUnknown:
		return nil
	}
	return nil
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.userRepo.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.UserName, b.cfg.TimezoneOffset)
}

func (b *Bot) sendText(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendPlain(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) editMessage(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(edit)
	return err
}

// failView reports a storage failure on the view being rendered. Errors are
// terminal per request; the user just retries the action.
func (b *Bot) failView(cb *tgbotapi.CallbackQuery, what string, err error) error {
	log.Printf("%s for %d: %v", what, cb.From.ID, err)
	return b.editMessage(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("❌ Couldn't load %s. Please try again.", what), backOnlyKeyboard())
}

func (b *Bot) timeReport() string {
	now := b.clk.Now()
	utc := now.UTC()
	return fmt.Sprintf(
		"🕐 <b>Current Time</b>\n\n"+
			"📍 <b>Local (UTC%+d)</b>: %s\n"+
			"🌍 <b>UTC</b>: %s\n"+
			"⏰ <b>Time Now</b>: %s\n"+
			"📅 <b>Date</b>: %s",
		b.cfg.TimezoneOffset,
		now.Format("2006-01-02 15:04:05"),
		utc.Format("2006-01-02 15:04:05"),
		now.Format("15:04"),
		now.Format("Monday, January 02, 2006"),
	)
}

func escape(s string) string {
	return html.EscapeString(s)
}

func priorityIcon(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "🔴"
	case model.PriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}
