package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents an account in the marketplace. The same account can post
// jobs as a customer and apply for jobs as a worker.
type User struct {
	ID           string                      `gorm:"primaryKey;size:36" json:"id"`
	Name         string                      `gorm:"size:100;not null" json:"name"`
	Email        string                      `gorm:"size:100;uniqueIndex" json:"email"`
	Phone        string                      `gorm:"size:20" json:"phone"`
	Address      string                      `gorm:"size:200" json:"address"`
	AadhaarLast4 string                      `gorm:"size:4" json:"aadhaarLast4"`
	Gender       string                      `gorm:"size:10" json:"gender"`
	Credits      int                         `gorm:"not null;default:0" json:"credits"`
	Rating       float64                     `gorm:"not null;default:0" json:"rating"`
	ReviewCount  int                         `gorm:"not null;default:0" json:"reviewCount"`
	IsVerified   bool                        `gorm:"default:true" json:"isVerified"`
	Availability string                      `gorm:"size:100" json:"availability"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	LastSeen     *time.Time                  `json:"lastSeen"`
	IsOnline     bool                        `gorm:"-" json:"isOnline"` // computed, see MarkOnline
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an id when the caller did not provide one
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// MarkOnline computes the derived IsOnline flag: a user counts as online when
// their last recorded activity is within the given window.
func (u *User) MarkOnline(window time.Duration) {
	u.IsOnline = u.LastSeen != nil && time.Since(*u.LastSeen) < window
}
