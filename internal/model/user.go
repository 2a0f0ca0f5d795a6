package model

import "time"

// User stores Telegram user metadata and notification preferences.
type User struct {
	ID                   uint  `gorm:"primaryKey"`
	TelegramID           int64 `gorm:"uniqueIndex"`
	FirstName            string
	Username             string
	TimezoneOffset       int  `gorm:"default:5"` // hours east of UTC, global for the deployment
	NotificationsEnabled bool `gorm:"default:true"`
	QuietHoursStart      *string // HH:MM, reminders suppressed inside the window
	QuietHoursEnd        *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
