package services

import (
	"log"
	"time"

	"github.com/anitha-dev/gigconnect-api/models"
	"gorm.io/gorm"
)

// Presence records user activity timestamps. Touches are best-effort
// bookkeeping and must never fail the request that triggered them.
type Presence struct {
	db *gorm.DB
}

// NewPresence creates a presence service
func NewPresence(db *gorm.DB) *Presence {
	return &Presence{db: db}
}

// Touch stamps the user's last-seen time. Unknown ids and store errors are
// logged and swallowed.
func (p *Presence) Touch(userID string) {
	if userID == "" {
		return
	}
	now := time.Now()
	err := p.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen", now).Error
	if err != nil {
		log.Printf("Presence touch failed for user %s: %v", userID, err)
	}
}
