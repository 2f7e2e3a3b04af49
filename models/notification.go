package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification type values
const (
	NotificationTypeRequest = "request"
	NotificationTypeAccept  = "accept"
	NotificationTypeReject  = "reject"
	NotificationTypeMessage = "message"
	NotificationTypeInfo    = "info"
)

// Notification is an append-only event delivered to one recipient. Clients
// poll for these; only the read flag ever changes after creation.
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"userId"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Message   string    `gorm:"size:500" json:"message"`
	RelatedID *string   `gorm:"size:36" json:"relatedId"` // usually a job id
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"timestamp"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns an id when the caller did not provide one
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
