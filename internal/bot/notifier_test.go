package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"study-planner/internal/model"
	"study-planner/internal/service"
)

func quietUser(start, end string) *model.User {
	return &model.User{QuietHoursStart: &start, QuietHoursEnd: &end}
}

func TestInQuietHours(t *testing.T) {
	tests := []struct {
		name   string
		user   *model.User
		nowKey string
		want   bool
	}{
		{"no window configured", &model.User{}, "12:00", false},
		{"inside simple window", quietUser("13:00", "15:00"), "14:00", true},
		{"before simple window", quietUser("13:00", "15:00"), "12:59", false},
		{"end is exclusive", quietUser("13:00", "15:00"), "15:00", false},
		{"inside wrap after midnight", quietUser("23:00", "07:00"), "02:30", true},
		{"inside wrap before midnight", quietUser("23:00", "07:00"), "23:45", true},
		{"outside wrap", quietUser("23:00", "07:00"), "12:00", false},
		{"degenerate equal window", quietUser("08:00", "08:00"), "08:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inQuietHours(tt.user, tt.nowKey))
		})
	}
}

func TestReminderText(t *testing.T) {
	assert.Equal(t, "⏰ 1 hour until: IELTS Reading", reminderText("IELTS Reading", service.Remind1h))
	assert.Equal(t, "⚠️ 30 minutes until: IELTS Reading", reminderText("IELTS Reading", service.Remind30m))
	assert.Equal(t, "🚀 Time to start: IELTS Reading", reminderText("IELTS Reading", service.RemindStart))

	// Commutes phrase the lead-up reminders as "before".
	assert.Equal(t, "⏰ 1 hour before: 🚌 commute to school", reminderText("🚌 commute to school", service.Remind1h))
	assert.Equal(t, "🚀 Time to start: 🚌 commute to school", reminderText("🚌 commute to school", service.RemindStart))
}
