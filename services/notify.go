package services

import (
	"errors"

	"github.com/anitha-dev/gigconnect-api/models"
	"gorm.io/gorm"
)

// appendNotification writes one notification row inside the caller's
// transaction. Recipients with no account id are skipped silently.
func appendNotification(tx *gorm.DB, userID, kind, message string, relatedID *string) error {
	if userID == "" {
		return nil
	}
	n := models.Notification{
		UserID:    userID,
		Type:      kind,
		Message:   message,
		RelatedID: relatedID,
	}
	return tx.Create(&n).Error
}

// Notifications serves the per-user notification log
type Notifications struct {
	db *gorm.DB
}

// NewNotifications creates a notifications service
func NewNotifications(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

// List returns every notification for a user, newest first
func (s *Notifications) List(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns the number of unread notifications for a user
func (s *Notifications) UnreadCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips one notification to read. Monotonic: re-marking an already
// read notification is a no-op.
func (s *Notifications) MarkRead(id string) error {
	var n models.Notification
	if err := s.db.First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.Read {
		return nil
	}
	return s.db.Model(&n).Update("read", true).Error
}

// MarkAllRead flips every unread notification for a user in one batch
func (s *Notifications) MarkAllRead(userID string) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
