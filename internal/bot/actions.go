package bot

import "strings"

// actionKind is the closed set of menu actions. Callback data is parsed into
// it once at the edge; handlers dispatch over the enum, never over raw
// strings.
type actionKind int

const (
	actionUnknown actionKind = iota
	actionBackToMenu
	actionWhatNow
	actionWhatsNext
	actionWhatMissed
	actionViewToday
	actionViewTomorrow
	actionAddTask
	actionMarkDone
	actionViewIncomplete
	actionStats
	actionSettings
	actionToggleNotifications
	actionDebugTime
	actionCancelAdd
	actionBack
	actionPickTime     // arg: HH:MM
	actionPickPriority // arg: High | Medium | Low
	actionPickCategory // arg: category name
	actionTaskDone     // arg: task id
)

// Callback data values carried by the inline keyboards.
const (
	cbBackToMenu          = "back_to_menu"
	cbWhatNow             = "what_now"
	cbWhatsNext           = "whats_next"
	cbWhatMissed          = "what_missed"
	cbViewToday           = "view_today"
	cbViewTomorrow        = "view_tomorrow"
	cbAddTask             = "add_task"
	cbMarkDone            = "mark_done"
	cbViewIncomplete      = "view_incomplete"
	cbStats               = "stats"
	cbSettings            = "settings"
	cbToggleNotifications = "toggle_notifications"
	cbDebugTime           = "debug_time"
	cbCancelAdd           = "cancel_add"
	cbBack                = "back"
	cbTimePrefix          = "time_"
	cbPrioPrefix          = "prio_"
	cbCatPrefix           = "cat_"
	cbDonePrefix          = "done_"
)

type menuAction struct {
	kind actionKind
	arg  string
}

func parseAction(data string) menuAction {
	switch data {
	case cbBackToMenu:
		return menuAction{kind: actionBackToMenu}
	case cbWhatNow:
		return menuAction{kind: actionWhatNow}
	case cbWhatsNext:
		return menuAction{kind: actionWhatsNext}
	case cbWhatMissed:
		return menuAction{kind: actionWhatMissed}
	case cbViewToday:
		return menuAction{kind: actionViewToday}
	case cbViewTomorrow:
		return menuAction{kind: actionViewTomorrow}
	case cbAddTask:
		return menuAction{kind: actionAddTask}
	case cbMarkDone:
		return menuAction{kind: actionMarkDone}
	case cbViewIncomplete:
		return menuAction{kind: actionViewIncomplete}
	case cbStats:
		return menuAction{kind: actionStats}
	case cbSettings:
		return menuAction{kind: actionSettings}
	case cbToggleNotifications:
		return menuAction{kind: actionToggleNotifications}
	case cbDebugTime:
		return menuAction{kind: actionDebugTime}
	case cbCancelAdd:
		return menuAction{kind: actionCancelAdd}
	case cbBack:
		return menuAction{kind: actionBack}
	}

	switch {
	case strings.HasPrefix(data, cbTimePrefix):
		return menuAction{kind: actionPickTime, arg: strings.TrimPrefix(data, cbTimePrefix)}
	case strings.HasPrefix(data, cbPrioPrefix):
		return menuAction{kind: actionPickPriority, arg: strings.TrimPrefix(data, cbPrioPrefix)}
	case strings.HasPrefix(data, cbCatPrefix):
		return menuAction{kind: actionPickCategory, arg: strings.TrimPrefix(data, cbCatPrefix)}
	case strings.HasPrefix(data, cbDonePrefix):
		return menuAction{kind: actionTaskDone, arg: strings.TrimPrefix(data, cbDonePrefix)}
	}

	return menuAction{kind: actionUnknown}
}
