package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"study-planner/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertFromTelegram finds or creates a user based on TelegramID and updates
// basic profile info. Users are created on first interaction, never deleted.
func (r *UserRepository) UpsertFromTelegram(ctx context.Context, telegramID int64, firstName, username string, tzOffset int) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("telegram_id = ?", telegramID).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"first_name": firstName,
			"username":   username,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return &user, nil
	case err == gorm.ErrRecordNotFound:
		user = model.User{
			TelegramID:           telegramID,
			FirstName:            firstName,
			Username:             username,
			TimezoneOffset:       tzOffset,
			NotificationsEnabled: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ToggleNotifications flips the notification setting and returns the new value.
func (r *UserRepository) ToggleNotifications(ctx context.Context, userID uint) (bool, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	if err := db.First(&user, userID).Error; err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	newValue := !user.NotificationsEnabled
	if err := db.Model(&user).Update("notifications_enabled", newValue).Error; err != nil {
		return false, fmt.Errorf("toggle notifications: %w", err)
	}
	return newValue, nil
}

func (r *UserRepository) UpdateQuietHours(ctx context.Context, userID uint, start, end *string) error {
	updates := map[string]interface{}{
		"quiet_hours_start": start,
		"quiet_hours_end":   end,
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return fmt.Errorf("update quiet hours: %w", err)
	}
	return nil
}
