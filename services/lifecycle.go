package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/anitha-dev/gigconnect-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// completionCredits is the fixed reward granted to a worker when the
// customer marks their job completed.
const completionCredits = 500

// Lifecycle implements the job/application state machine. Every transition
// runs as a single transaction; the affected job row is locked first so
// concurrent transitions on the same job serialize instead of racing.
type Lifecycle struct {
	db     *gorm.DB
	strict bool
}

// NewLifecycle creates a lifecycle service. In strict mode transitions fail
// when they reference a missing user account instead of provisioning a
// placeholder.
func NewLifecycle(db *gorm.DB, strict bool) *Lifecycle {
	return &Lifecycle{db: db, strict: strict}
}

// lockForUpdate adds a row-level lock to the query on databases that support
// it. SQLite has no FOR UPDATE; its single-writer transaction lock already
// serializes competing transitions.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Apply submits a worker's application for an open job. The job goes on
// hold, a system message narrates the request in the job chat, and the
// creator receives a request notification.
func (s *Lifecycle) Apply(jobID, workerID string) (*models.Job, *models.JobApplication, error) {
	var job models.Job
	var app models.JobApplication

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&job, "id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return err
		}
		if job.Status != models.JobStatusOpen {
			return ErrJobNotOpen
		}

		var existing int64
		if err := tx.Model(&models.JobApplication{}).
			Where("job_id = ? AND worker_id = ?", jobID, workerID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyApplied
		}

		worker, err := s.ensureUser(tx, workerID, "Recovered User", 5.0)
		if err != nil {
			return err
		}

		app = models.JobApplication{
			JobID:    jobID,
			WorkerID: workerID,
			Status:   models.ApplicationStatusPending,
		}
		if err := tx.Create(&app).Error; err != nil {
			return err
		}

		chat := models.Message{
			JobID:    jobID,
			SenderID: workerID,
			Content: fmt.Sprintf("%s%s has requested to work on the task: %s",
				models.SystemMessagePrefix, worker.Name, job.Title),
		}
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}

		notice := fmt.Sprintf("%s requested to work on '%s'", worker.Name, job.Title)
		if err := appendNotification(tx, job.CreatorID, models.NotificationTypeRequest, notice, &job.ID); err != nil {
			return err
		}

		if err := tx.Model(&job).Update("status", models.JobStatusOnHold).Error; err != nil {
			return err
		}
		job.Status = models.JobStatusOnHold
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Reload with the worker attached for the response
	if err := s.db.Preload("Worker").First(&app, "id = ?", app.ID).Error; err != nil {
		return nil, nil, err
	}
	job.SyncAmount()
	return &job, &app, nil
}

// Accept approves one application: the application becomes accepted, the job
// locks onto that worker, and every other application for the job is
// rejected so at most one accepted application remains. Accepting an
// application that is no longer pending fails without side effects.
func (s *Lifecycle) Accept(appID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var app models.JobApplication
		if err := lockForUpdate(tx).First(&app, "id = ?", appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if app.Status != models.ApplicationStatusPending {
			return ErrApplicationDecided
		}

		var job models.Job
		if err := lockForUpdate(tx).First(&job, "id = ?", app.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return err
		}

		if err := tx.Model(&app).Update("status", models.ApplicationStatusAccepted).Error; err != nil {
			return err
		}
		if err := tx.Model(&job).Updates(map[string]interface{}{
			"status":    models.JobStatusLocked,
			"worker_id": app.WorkerID,
		}).Error; err != nil {
			return err
		}

		// Everyone else loses, regardless of their current status
		if err := tx.Model(&models.JobApplication{}).
			Where("job_id = ? AND id <> ?", job.ID, app.ID).
			Update("status", models.ApplicationStatusRejected).Error; err != nil {
			return err
		}

		return appendNotification(tx, app.WorkerID, models.NotificationTypeAccept,
			"Your request has been approved.", &job.ID)
	})
}

// Reject declines an application. A job still on hold reverts to open and
// clears its worker; a job that already moved past on hold is untouched.
func (s *Lifecycle) Reject(appID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var app models.JobApplication
		if err := lockForUpdate(tx).First(&app, "id = ?", appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		var job models.Job
		if err := lockForUpdate(tx).First(&job, "id = ?", app.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return err
		}

		if err := tx.Model(&app).Update("status", models.ApplicationStatusRejected).Error; err != nil {
			return err
		}

		if job.Status == models.JobStatusOnHold {
			if err := tx.Model(&job).Updates(map[string]interface{}{
				"status":    models.JobStatusOpen,
				"worker_id": nil,
			}).Error; err != nil {
				return err
			}
		}

		return appendNotification(tx, app.WorkerID, models.NotificationTypeReject,
			"Your request has been rejected.", &job.ID)
	})
}

// Cancel withdraws a pending application. The application is deleted; when
// it was the last pending one the job reopens.
func (s *Lifecycle) Cancel(appID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var app models.JobApplication
		if err := lockForUpdate(tx).First(&app, "id = ?", appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if app.Status != models.ApplicationStatusPending {
			return ErrApplicationNotPending
		}

		var job models.Job
		if err := lockForUpdate(tx).First(&job, "id = ?", app.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return err
		}

		if err := tx.Delete(&app).Error; err != nil {
			return err
		}

		var pending int64
		if err := tx.Model(&models.JobApplication{}).
			Where("job_id = ? AND status = ?", job.ID, models.ApplicationStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending == 0 {
			if err := tx.Model(&job).Update("status", models.JobStatusOpen).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Complete closes out a locked job: the job records the rating and review,
// the worker's running rating average and review count update, and the
// worker earns the completion reward.
func (s *Lifecycle) Complete(jobID string, rating float64, review string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := lockForUpdate(tx).First(&job, "id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return err
		}
		if job.Status != models.JobStatusLocked || job.WorkerID == nil {
			return ErrJobNotLocked
		}

		var worker models.User
		if err := lockForUpdate(tx).First(&worker, "id = ?", *job.WorkerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Model(&job).Updates(map[string]interface{}{
			"status": models.JobStatusCompleted,
			"rating": rating,
			"review": review,
		}).Error; err != nil {
			return err
		}

		newRating := (worker.Rating*float64(worker.ReviewCount) + rating) / float64(worker.ReviewCount+1)
		if err := tx.Model(&worker).Updates(map[string]interface{}{
			"rating":       newRating,
			"review_count": worker.ReviewCount + 1,
			"credits":      worker.Credits + completionCredits,
		}).Error; err != nil {
			return err
		}

		notice := fmt.Sprintf("Job '%s' completed! You received %g stars.", job.Title, rating)
		return appendNotification(tx, worker.ID, models.NotificationTypeInfo, notice, &job.ID)
	})
}

// DeleteJob hard-deletes a job and its applications. Messages and
// notifications keep their now-orphaned job references.
func (s *Lifecycle) DeleteJob(jobID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := lockForUpdate(tx).First(&job, "id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return err
		}
		if err := tx.Where("job_id = ?", jobID).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})
}

// ensureUser fetches a user, provisioning a placeholder account in lenient
// mode. Client-side session drift can reference ids that were never
// registered; provisioning keeps those requests serviceable.
func (s *Lifecycle) ensureUser(tx *gorm.DB, userID, placeholderName string, placeholderRating float64) (*models.User, error) {
	var user models.User
	err := tx.First(&user, "id = ?", userID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if s.strict {
		return nil, ErrUserNotFound
	}

	short := userID
	if len(short) > 8 {
		short = short[:8]
	}
	user = models.User{
		ID:         userID,
		Name:       placeholderName,
		Email:      fmt.Sprintf("recovered_%s@example.com", short),
		Rating:     placeholderRating,
		IsVerified: true,
		Skills:     datatypes.JSONSlice[string]{},
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	log.Printf("Provisioned placeholder user %s (%s)", userID, placeholderName)
	return &user, nil
}
