package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDayRoundTrip(t *testing.T) {
	tod, err := ParseTimeOfDay("15:30")
	require.NoError(t, err)
	assert.Equal(t, "15:30", tod.String())

	tod, err = ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, "00:00", tod.String())

	tod, err = ParseTimeOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, "23:59", tod.String())
}

func TestParseTimeOfDayInvalid(t *testing.T) {
	for _, input := range []string{
		"25:00", "abc", "", "7:30", "15-30", "15:5", "15:60", "24:00", "1530", "15:30:00", "１5:30",
	} {
		_, err := ParseTimeOfDay(input)
		assert.ErrorIs(t, err, ErrInvalidTime, "input %q", input)
	}
}

func fixedClock(utc time.Time) *Clock {
	return NewAt(5, func() time.Time { return utc })
}

func TestNowUsesFixedOffsetNotHostZone(t *testing.T) {
	// 23:30 UTC is already the next day at UTC+5.
	c := fixedClock(time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC))

	now := c.Now()
	assert.Equal(t, "2026-03-10 04:30", now.Format("2006-01-02 15:04"))
	assert.Equal(t, "2026-03-10", c.TodayKey())
	assert.Equal(t, "2026-03-11", c.TomorrowKey())
	assert.Equal(t, "04:30", c.NowKey())
}

func TestInstantMatchesNowZone(t *testing.T) {
	c := fixedClock(time.Date(2026, 3, 10, 4, 0, 0, 0, time.UTC))

	at, err := c.Instant("2026-03-10", TimeOfDay{Hour: 9, Minute: 0})
	require.NoError(t, err)
	// 09:00 at UTC+5 is 04:00 UTC, i.e. exactly "now".
	assert.Equal(t, time.Duration(0), at.Sub(c.Now()))

	_, err = c.Instant("not-a-date", TimeOfDay{})
	assert.Error(t, err)
}

func TestWeekdayName(t *testing.T) {
	name, err := WeekdayName("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, "MONDAY", name)

	name, err = WeekdayName("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, "SUNDAY", name)

	_, err = WeekdayName("03/09/2026")
	assert.Error(t, err)
}

func TestWeekBounds(t *testing.T) {
	start, err := WeekStartKey("2026-03-11") // Wednesday
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", start)

	end, err := WeekEndKey("2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", end)

	// A Monday is its own week start.
	start, err = WeekStartKey("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", start)
}
