package model

import "time"

// RecurringTask is a weekly template. Every morning the materializer expands
// the templates matching the day of week into concrete dated tasks.
type RecurringTask struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"index:idx_user_day"`
	DayOfWeek     string `gorm:"index:idx_user_day"` // MONDAY .. SUNDAY
	Name          string
	ScheduledTime string // HH:MM
	Priority      string
	Category      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
