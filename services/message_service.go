package services

import (
	"context"
	"errors"
	"fmt"
	"legal_aid_app_go/models"
	"mime/multipart"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// messagePolicy strips anything beyond basic user-generated markup from
// message bodies before storage.
var messagePolicy = bluemonday.UGCPolicy()

// SendMessageInput is the message creation request.
type SendMessageInput struct {
	SenderID    string
	RecipientID string
	ThreadID    *string // nil starts a new thread
	Subject     string  // used only when starting a new thread
	Content     string
}

// SendMessage creates a message between two live users. When no thread is
// given a new one is started; both users become participants and the
// recipient gets an unread notification. All rows commit together.
func SendMessage(db *gorm.DB, input SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(messagePolicy.Sanitize(input.Content))
	if content == "" {
		return nil, fmt.Errorf("message content is empty after sanitization")
	}

	var message *models.Message

	err := db.Transaction(func(tx *gorm.DB) error {
		var users int64
		if err := tx.Model(&models.User{}).
			Where("id IN ?", []string{input.SenderID, input.RecipientID}).
			Count(&users).Error; err != nil {
			return fmt.Errorf("failed to verify participants: %w", err)
		}
		if users != 2 {
			return ErrNotFound
		}

		threadID := input.ThreadID
		if threadID == nil {
			subject := input.Subject
			if subject == "" {
				subject = "(no subject)"
			}
			thread := &models.MessageThread{Subject: subject}
			if err := tx.Create(thread).Error; err != nil {
				return fmt.Errorf("failed to create thread: %w", err)
			}
			threadID = &thread.ID
		} else {
			var count int64
			if err := tx.Model(&models.MessageThread{}).Where("id = ?", *threadID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to verify thread: %w", err)
			}
			if count == 0 {
				return ErrNotFound
			}
		}

		message = &models.Message{
			ThreadID:    threadID,
			SenderID:    &input.SenderID,
			RecipientID: &input.RecipientID,
			Content:     content,
		}
		if err := tx.Create(message).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		// Membership is conflict-guarded so re-sends in an existing thread
		// never duplicate participants
		for _, userID := range []string{input.SenderID, input.RecipientID} {
			participant := models.ThreadParticipant{ThreadID: *threadID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant).Error; err != nil {
				return fmt.Errorf("failed to add thread participant: %w", err)
			}
		}

		notification := &models.MessageNotification{
			MessageID: message.ID,
			UserID:    input.RecipientID,
		}
		if err := tx.Create(notification).Error; err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return message, nil
}

// AddReaction records a reaction idempotently: reacting twice with the same
// type is a no-op, decided by the unique index rather than a pre-read.
func AddReaction(db *gorm.DB, messageID, userID, reactionType string) (*models.MessageReaction, error) {
	var message models.Message
	if err := db.First(&message, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load message: %w", err)
	}

	reaction := &models.MessageReaction{
		MessageID: messageID,
		UserID:    userID,
		Type:      reactionType,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(reaction).Error; err != nil {
		return nil, fmt.Errorf("failed to add reaction: %w", err)
	}

	// On conflict the generated ID is meaningless; return the stored row
	var stored models.MessageReaction
	if err := db.Where("message_id = ? AND user_id = ? AND type = ?",
		messageID, userID, reactionType).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to load reaction: %w", err)
	}
	return &stored, nil
}

// ArchiveMessage marks a message archived. Thread archival is derived from
// its messages by the integrity sweep.
func ArchiveMessage(db *gorm.DB, messageID string) error {
	res := db.Model(&models.Message{}).Where("id = ?", messageID).Update("is_archived", true)
	if res.Error != nil {
		return fmt.Errorf("failed to archive message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddAttachment uploads the file through the configured storage provider and
// links it to the message.
func AddAttachment(ctx context.Context, db *gorm.DB, messageID string, file *multipart.FileHeader) (*models.Attachment, error) {
	var message models.Message
	if err := db.First(&message, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load message: %w", err)
	}

	if Storage == nil {
		return nil, fmt.Errorf("storage not initialized")
	}

	key := fmt.Sprintf("attachments/%s/%s", messageID, SafeFileName(file.Filename))
	result, err := Storage.Upload(ctx, file, key)
	if err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	attachment := &models.Attachment{
		MessageID:        messageID,
		FileName:         result.FileName,
		FileOriginalName: result.FileOriginalName,
		FileSize:         result.FileSize,
		MimeType:         result.MimeType,
		StorageKey:       result.Key,
		URL:              result.URL,
	}
	if err := db.Create(attachment).Error; err != nil {
		// The stored object is unreachable without its row; clean it up
		if delErr := Storage.Delete(ctx, result.Key); delErr != nil {
			return nil, fmt.Errorf("failed to create attachment record: %w (orphaned object %s: %v)", err, result.Key, delErr)
		}
		return nil, fmt.Errorf("failed to create attachment record: %w", err)
	}

	return attachment, nil
}

// GetThread returns a thread with messages and participants.
func GetThread(db *gorm.DB, threadID string) (*models.MessageThread, error) {
	var thread models.MessageThread
	err := db.Preload("Messages", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC")
	}).Preload("Participants").First(&thread, "id = ?", threadID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}
	return &thread, nil
}
