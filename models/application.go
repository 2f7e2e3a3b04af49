package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application status values
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// JobApplication represents a worker's request to perform a specific job.
// A worker can hold at most one application per job; the composite unique
// index backs the duplicate check in the apply transition.
type JobApplication struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	JobID     string    `gorm:"size:36;not null;uniqueIndex:idx_job_worker" json:"jobId"`
	Job       Job       `gorm:"foreignKey:JobID" json:"-"`
	WorkerID  string    `gorm:"size:36;not null;uniqueIndex:idx_job_worker" json:"workerId"`
	Worker    User      `gorm:"foreignKey:WorkerID" json:"worker"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"timestamp"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name for the JobApplication model
func (JobApplication) TableName() string {
	return "job_applications"
}

// BeforeCreate assigns an id when the caller did not provide one
func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
