package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job status values. A job starts open, goes on hold when the first
// application arrives, locks when a worker is accepted, and completes when
// the customer signs off.
const (
	JobStatusOpen      = "open"
	JobStatusOnHold    = "on_hold"
	JobStatusLocked    = "locked"
	JobStatusCompleted = "completed"
)

// BudgetRange is the min/max budget a customer is willing to pay
type BudgetRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Job represents a posted task awaiting a worker
type Job struct {
	ID             string      `gorm:"primaryKey;size:36" json:"id"`
	Title          string      `gorm:"size:100;not null" json:"title"`
	Description    string      `gorm:"size:500" json:"description"`
	Category       string      `gorm:"size:50" json:"category"`
	MinAmount      int         `gorm:"not null" json:"-"`
	MaxAmount      int         `gorm:"not null" json:"-"`
	Amount         BudgetRange `gorm:"-" json:"amount"` // computed from MinAmount/MaxAmount
	Location       string      `gorm:"size:100" json:"location"`
	DeliveryType   string      `gorm:"size:20" json:"deliveryType"`
	Urgency        string      `gorm:"size:20" json:"urgency"`
	PaymentMode    string      `gorm:"size:50;default:'online'" json:"paymentMode"` // online (escrow) or cod
	CustomerName   string      `gorm:"size:100" json:"customerName"`
	CustomerRating float64     `json:"customerRating"`
	Status         string      `gorm:"size:20;not null;default:'open';index" json:"status"`
	Rating         *float64    `json:"rating,omitempty"`                 // set at completion
	Review         *string     `gorm:"size:500" json:"review,omitempty"` // set at completion
	CreatorID      string      `gorm:"size:36;not null;index" json:"creatorId"`
	WorkerID       *string     `gorm:"size:36;index" json:"workerId"` // set iff status is locked or completed
	CreatedAt      time.Time   `json:"postedAt"`
	UpdatedAt      time.Time   `json:"-"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// BeforeCreate assigns an id when the caller did not provide one
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

// AfterFind populates the computed budget range from the persisted columns
func (j *Job) AfterFind(tx *gorm.DB) error {
	j.SyncAmount()
	return nil
}

// AfterSave keeps the computed budget range in step after writes
func (j *Job) AfterSave(tx *gorm.DB) error {
	j.SyncAmount()
	return nil
}

// SyncAmount refreshes the computed Amount field
func (j *Job) SyncAmount() {
	j.Amount = BudgetRange{Min: j.MinAmount, Max: j.MaxAmount}
}
