package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemMessagePrefix marks chat messages generated by the backend to
// narrate lifecycle events. Clients render these differently.
const SystemMessagePrefix = "EXT_SYSTEM: "

// Message represents one entry in a job's chat. Append-only; only the read
// flag ever changes after creation.
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	JobID     string    `gorm:"size:36;not null;index" json:"jobId"`
	SenderID  string    `gorm:"size:36;not null;index" json:"senderId"`
	Content   string    `gorm:"size:1000" json:"content"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"timestamp"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns an id when the caller did not provide one
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsSystem reports whether the message was generated by the backend
func (m *Message) IsSystem() bool {
	return strings.HasPrefix(m.Content, SystemMessagePrefix)
}
