package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ErrInvalidTime is returned for anything that is not strict 24h HH:MM.
var ErrInvalidTime = errors.New("invalid time, expected HH:MM")

// TimeOfDay is a civil wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses strict HH:MM. Single-digit hours, wrong separators
// and out-of-range values are all rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, ErrInvalidTime
	}
	hour, ok := parseTwoDigits(s[:2])
	if !ok || hour > 23 {
		return TimeOfDay{}, ErrInvalidTime
	}
	minute, ok := parseTwoDigits(s[3:])
	if !ok || minute > 59 {
		return TimeOfDay{}, ErrInvalidTime
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func parseTwoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// Clock produces the current time in a fixed civil offset. The host machine's
// local timezone is never consulted: the universal instant is taken first and
// only then shifted into the configured zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New builds a clock for a fixed UTC offset in whole hours.
func New(offsetHours int) *Clock {
	return &Clock{
		loc: time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600),
		now: time.Now,
	}
}

// NewAt builds a clock with an injected time source, for tests.
func NewAt(offsetHours int, now func() time.Time) *Clock {
	c := New(offsetHours)
	c.now = now
	return c
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant shifted into the fixed zone.
func (c *Clock) Now() time.Time {
	return c.now().UTC().In(c.loc)
}

func (c *Clock) TodayKey() string {
	return c.Now().Format(DateLayout)
}

func (c *Clock) TomorrowKey() string {
	return c.Now().AddDate(0, 0, 1).Format(DateLayout)
}

// NowKey returns the current wall-clock time as HH:MM for store comparisons.
func (c *Clock) NowKey() string {
	return c.Now().Format(TimeLayout)
}

// Instant combines a date key and a time of day into an absolute instant in
// the fixed zone. Scheduler and resolver both go through here so that "now"
// and "scheduled" always live in the same zone.
func (c *Clock) Instant(dateKey string, tod TimeOfDay) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, dateKey, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", dateKey, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour, tod.Minute, 0, 0, c.loc), nil
}

// WeekdayName returns the template key for a date: MONDAY .. SUNDAY.
func WeekdayName(dateKey string) (string, error) {
	d, err := time.Parse(DateLayout, dateKey)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", dateKey, err)
	}
	return strings.ToUpper(d.Weekday().String()), nil
}

// WeekStartKey returns the Monday of the week containing dateKey.
func WeekStartKey(dateKey string) (string, error) {
	d, err := time.Parse(DateLayout, dateKey)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", dateKey, err)
	}
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset).Format(DateLayout), nil
}

// WeekEndKey returns the Sunday of the week containing dateKey.
func WeekEndKey(dateKey string) (string, error) {
	start, err := WeekStartKey(dateKey)
	if err != nil {
		return "", err
	}
	d, _ := time.Parse(DateLayout, start)
	return d.AddDate(0, 0, 6).Format(DateLayout), nil
}
