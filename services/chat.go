package services

import (
	"errors"
	"fmt"

	"github.com/anitha-dev/gigconnect-api/models"
	"gorm.io/gorm"
)

// Chat serves the per-job message log
type Chat struct {
	db     *gorm.DB
	strict bool
}

// NewChat creates a chat service. Strict mode refuses messages from unknown
// sender ids instead of provisioning a placeholder account.
func NewChat(db *gorm.DB, strict bool) *Chat {
	return &Chat{db: db, strict: strict}
}

// Send appends a message to a job's chat and notifies the counterparty:
// the assigned worker when the creator writes, the creator otherwise.
func (s *Chat) Send(jobID, senderID, content string) (*models.Message, error) {
	var msg models.Message

	err := s.db.Transaction(func(tx *gorm.DB) error {
		sender, err := s.ensureSender(tx, senderID)
		if err != nil {
			return err
		}

		msg = models.Message{
			JobID:    jobID,
			SenderID: senderID,
			Content:  content,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}

		var job models.Job
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The message outlives its job (deletes leave the chat
				// behind), so an unknown job id is not an error here.
				return nil
			}
			return err
		}

		recipient := job.CreatorID
		if senderID == job.CreatorID {
			recipient = ""
			if job.WorkerID != nil {
				recipient = *job.WorkerID
			}
		}
		notice := fmt.Sprintf("New message from %s", sender.Name)
		return appendNotification(tx, recipient, models.NotificationTypeMessage, notice, &job.ID)
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// History returns a job's messages in strict chronological insertion order
func (s *Chat) History(jobID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// MarkRead flips every message in the job that was sent to the given user
// (i.e. not by them). Monotonic: already-read messages are untouched.
func (s *Chat) MarkRead(jobID, userID string) error {
	return s.db.Model(&models.Message{}).
		Where("job_id = ? AND sender_id <> ? AND read = ?", jobID, userID, false).
		Update("read", true).Error
}

// ensureSender fetches the sender, provisioning a placeholder account in
// lenient mode for ids left behind by stale client sessions.
func (s *Chat) ensureSender(tx *gorm.DB, senderID string) (*models.User, error) {
	lc := Lifecycle{db: s.db, strict: s.strict}
	return lc.ensureUser(tx, senderID, "Recovered Sender", 0)
}
