package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		data string
		kind actionKind
		arg  string
	}{
		{"what_now", actionWhatNow, ""},
		{"back_to_menu", actionBackToMenu, ""},
		{"toggle_notifications", actionToggleNotifications, ""},
		{"time_15:30", actionPickTime, "15:30"},
		{"prio_High", actionPickPriority, "High"},
		{"cat_IELTS", actionPickCategory, "IELTS"},
		{"done_42", actionTaskDone, "42"},
		{"garbage", actionUnknown, ""},
		{"", actionUnknown, ""},
	}
	for _, tc := range cases {
		got := parseAction(tc.data)
		assert.Equal(t, tc.kind, got.kind, "data %q", tc.data)
		assert.Equal(t, tc.arg, got.arg, "data %q", tc.data)
	}
}
