package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"study-planner/internal/model"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚡ What now?", cbWhatNow),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Today's Plan", cbViewToday),
			tgbotapi.NewInlineKeyboardButtonData("📅 Tomorrow", cbViewTomorrow),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Task", cbAddTask),
			tgbotapi.NewInlineKeyboardButtonData("📝 Mark Done", cbMarkDone),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Incomplete", cbViewIncomplete),
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", cbStats),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", cbSettings),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🕐 Debug: What time is it?", cbDebugTime),
		),
	)
}

func whatNowKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚡ What now?", cbWhatNow),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔜 What's next?", cbWhatsNext),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ What did I miss?", cbWhatMissed),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Menu", cbBackToMenu),
		),
	)
}

func backOnlyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Menu", cbBackToMenu),
		),
	)
}

func cancelAddKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Cancel", cbCancelAdd),
		),
	)
}

func timePickerKeyboard() tgbotapi.InlineKeyboardMarkup {
	times := []string{"08:00", "10:00", "12:00", "14:00", "16:00", "18:00", "20:00", "22:00"}
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, t := range times {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(t, cbTimePrefix+t))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back", cbBack),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func priorityKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔴 High", cbPrioPrefix+model.PriorityHigh),
			tgbotapi.NewInlineKeyboardButtonData("🟡 Medium", cbPrioPrefix+model.PriorityMedium),
			tgbotapi.NewInlineKeyboardButtonData("🟢 Low", cbPrioPrefix+model.PriorityLow),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", cbBack),
		),
	)
}

func categoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 IELTS", cbCatPrefix+"IELTS"),
			tgbotapi.NewInlineKeyboardButtonData("🎓 SAT", cbCatPrefix+"SAT"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏆 Olympiad", cbCatPrefix+"Olympiad"),
			tgbotapi.NewInlineKeyboardButtonData("💻 Project", cbCatPrefix+"Project"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔹 Other", cbCatPrefix+"Other"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", cbBack),
		),
	)
}

// markDoneKeyboard lists one button per task with a ✅/⬜ state icon.
func markDoneKeyboard(tasks []model.Task) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, task := range tasks {
		icon := "⬜"
		if task.Done() {
			icon = "✅"
		}
		label := fmt.Sprintf("%s %s %s", icon, task.ScheduledTime, shortName(task.Name, 30))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbDonePrefix, task.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Menu", cbBackToMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func settingsKeyboard(enabled bool) tgbotapi.InlineKeyboardMarkup {
	toggle := "🔔 Turn ON"
	if enabled {
		toggle = "🔕 Turn OFF"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toggle, cbToggleNotifications),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Menu", cbBackToMenu),
		),
	)
}

func shortName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}
