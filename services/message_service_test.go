package services

import (
	"legal_aid_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendMessageStartsThread(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@x.com", models.RoleClient)
	bob := createTestUser(t, db, "bob@x.com", models.RoleLawyer)

	message, err := SendMessage(db, SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: bob.ID,
		Subject:     "Case question",
		Content:     "Hello, I need help with my hearing.",
	})
	assert.NoError(t, err)
	assert.NotNil(t, message.ThreadID)

	// Both users became participants exactly once
	var participants []models.ThreadParticipant
	assert.NoError(t, db.Where("thread_id = ?", *message.ThreadID).Find(&participants).Error)
	assert.Len(t, participants, 2)

	// The recipient got an unread notification
	var notification models.MessageNotification
	assert.NoError(t, db.Where("message_id = ?", message.ID).First(&notification).Error)
	assert.Equal(t, bob.ID, notification.UserID)
	assert.Nil(t, notification.ReadAt)
}

func TestSendMessageReusesThreadWithoutDuplicatingParticipants(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@x.com", models.RoleClient)
	bob := createTestUser(t, db, "bob@x.com", models.RoleLawyer)

	first, err := SendMessage(db, SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: bob.ID,
		Content:     "first",
	})
	assert.NoError(t, err)

	second, err := SendMessage(db, SendMessageInput{
		SenderID:    bob.ID,
		RecipientID: alice.ID,
		ThreadID:    first.ThreadID,
		Content:     "reply",
	})
	assert.NoError(t, err)
	assert.Equal(t, *first.ThreadID, *second.ThreadID)

	var participants int64
	db.Model(&models.ThreadParticipant{}).Where("thread_id = ?", *first.ThreadID).Count(&participants)
	assert.Equal(t, int64(2), participants)
}

func TestSendMessageSanitizesContent(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@x.com", models.RoleClient)
	bob := createTestUser(t, db, "bob@x.com", models.RoleLawyer)

	message, err := SendMessage(db, SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: bob.ID,
		Content:     `Hello <script>alert("xss")</script><b>there</b>`,
	})
	assert.NoError(t, err)
	assert.NotContains(t, message.Content, "<script>")
	assert.Contains(t, message.Content, "<b>there</b>")

	// Content that is nothing but markup is rejected
	_, err = SendMessage(db, SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: bob.ID,
		Content:     `<script>alert("only")</script>`,
	})
	assert.Error(t, err)
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@x.com", models.RoleClient)

	message, err := SendMessage(db, SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: "88888888-8888-8888-8888-888888888888",
		Content:     "hello?",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, message)

	// Nothing was committed
	var threads, messages int64
	db.Model(&models.MessageThread{}).Count(&threads)
	db.Model(&models.Message{}).Count(&messages)
	assert.Equal(t, int64(0), threads)
	assert.Equal(t, int64(0), messages)
}

func TestAddReactionIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@x.com", models.RoleClient)
	bob := createTestUser(t, db, "bob@x.com", models.RoleLawyer)

	message, err := SendMessage(db, SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: bob.ID,
		Content:     "react to this",
	})
	assert.NoError(t, err)

	first, err := AddReaction(db, message.ID, bob.ID, models.ReactionTypeLike)
	assert.NoError(t, err)
	second, err := AddReaction(db, message.ID, bob.ID, models.ReactionTypeLike)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.MessageReaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddReactionUnknownMessage(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@x.com", models.RoleClient)

	reaction, err := AddReaction(db, "missing-message", alice.ID, models.ReactionTypeLike)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, reaction)
}

func TestArchiveMessage(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@x.com", models.RoleClient)
	bob := createTestUser(t, db, "bob@x.com", models.RoleLawyer)

	message, err := SendMessage(db, SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: bob.ID,
		Content:     "archive me",
	})
	assert.NoError(t, err)

	assert.NoError(t, ArchiveMessage(db, message.ID))

	var stored models.Message
	assert.NoError(t, db.First(&stored, "id = ?", message.ID).Error)
	assert.True(t, stored.IsArchived)

	assert.ErrorIs(t, ArchiveMessage(db, "missing-message"), ErrNotFound)
}

func TestGetThread(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@x.com", models.RoleClient)
	bob := createTestUser(t, db, "bob@x.com", models.RoleLawyer)

	message, err := SendMessage(db, SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: bob.ID,
		Subject:     "thread subject",
		Content:     "body",
	})
	assert.NoError(t, err)

	thread, err := GetThread(db, *message.ThreadID)
	assert.NoError(t, err)
	assert.Equal(t, "thread subject", thread.Subject)
	assert.Len(t, thread.Messages, 1)
	assert.Len(t, thread.Participants, 2)

	_, err = GetThread(db, "missing-thread")
	assert.ErrorIs(t, err, ErrNotFound)
}
