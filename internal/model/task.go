package model

import "time"

// Task statuses. Transitions are one-way: pending -> done. "Missed" is a
// derived view over pending tasks whose time has passed, never stored.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Task priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Task is a single dated entry in a user's day plan, either added by hand or
// expanded from a recurring template. The composite unique index is the
// storage-level guard against double materialization for the same day.
type Task struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"index;index:idx_user_date_name,unique"`
	Name          string `gorm:"index:idx_user_date_name,unique"`
	ScheduledTime string // HH:MM, civil local time
	Priority      string
	Category      string
	Status        string `gorm:"default:pending"`
	Date          string `gorm:"index:idx_user_date_name,unique"` // YYYY-MM-DD
	Duration      int    `gorm:"default:0"`                       // minutes
	Notes         string
	Tags          string
	Archived      bool `gorm:"default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t Task) Done() bool {
	return t.Status == StatusDone
}
