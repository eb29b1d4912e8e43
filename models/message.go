package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageThread groups messages between participants. A thread is archived
// once every message in it is archived.
//
// The messaging graph deliberately uses hard deletes: the integrity sweeper
// reasons about rows that exist, not rows hidden behind a soft-delete scope.
type MessageThread struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Subject    string `gorm:"not null" json:"subject"`
	IsArchived bool   `gorm:"not null;default:false" json:"is_archived"`

	Messages     []Message           `gorm:"foreignKey:ThreadID" json:"messages,omitempty"`
	Participants []ThreadParticipant `gorm:"foreignKey:ThreadID" json:"participants,omitempty"`
}

func (t *MessageThread) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

func (MessageThread) TableName() string {
	return "message_threads"
}

// Message is a single message between two users, optionally inside a thread.
type Message struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ThreadID    *string `gorm:"type:uuid;index" json:"thread_id,omitempty"`
	SenderID    *string `gorm:"type:uuid;index" json:"sender_id,omitempty"`
	RecipientID *string `gorm:"type:uuid;index" json:"recipient_id,omitempty"`

	Content    string     `gorm:"type:text;not null" json:"content"`
	IsArchived bool       `gorm:"not null;default:false" json:"is_archived"`
	ReadAt     *time.Time `json:"read_at,omitempty"`

	Attachments []Attachment      `gorm:"foreignKey:MessageID" json:"attachments,omitempty"`
	Reactions   []MessageReaction `gorm:"foreignKey:MessageID" json:"reactions,omitempty"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (Message) TableName() string {
	return "messages"
}

// ThreadParticipant records a user's membership in a thread.
type ThreadParticipant struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ThreadID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_participant_thread_user" json:"thread_id"`
	UserID   string `gorm:"type:uuid;not null;index;uniqueIndex:idx_participant_thread_user" json:"user_id"`
}

func (tp *ThreadParticipant) BeforeCreate(tx *gorm.DB) error {
	if tp.ID == "" {
		tp.ID = uuid.New().String()
	}
	return nil
}

func (ThreadParticipant) TableName() string {
	return "thread_participants"
}

// Reaction type constants
const (
	ReactionTypeLike     = "LIKE"
	ReactionTypeThanks   = "THANKS"
	ReactionTypeQuestion = "QUESTION"
)

// MessageReaction is a user's reaction on a message. At most one reaction of
// a given type per message and user.
type MessageReaction struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	MessageID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_reaction_message_user_type" json:"message_id"`
	UserID    string `gorm:"type:uuid;not null;index;uniqueIndex:idx_reaction_message_user_type" json:"user_id"`
	Type      string `gorm:"not null;uniqueIndex:idx_reaction_message_user_type" json:"type"`
}

func (mr *MessageReaction) BeforeCreate(tx *gorm.DB) error {
	if mr.ID == "" {
		mr.ID = uuid.New().String()
	}
	return nil
}

func (MessageReaction) TableName() string {
	return "message_reactions"
}

// MessageNotification is the unread-message marker for a recipient.
type MessageNotification struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	MessageID string     `gorm:"type:uuid;not null;index" json:"message_id"`
	UserID    string     `gorm:"type:uuid;not null;index" json:"user_id"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

func (mn *MessageNotification) BeforeCreate(tx *gorm.DB) error {
	if mn.ID == "" {
		mn.ID = uuid.New().String()
	}
	return nil
}

func (MessageNotification) TableName() string {
	return "message_notifications"
}

// Attachment is a stored file linked to a message.
type Attachment struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	MessageID string `gorm:"type:uuid;not null;index" json:"message_id"`

	FileName         string `gorm:"not null" json:"file_name"`
	FileOriginalName string `json:"file_original_name"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`
	StorageKey       string `gorm:"not null" json:"-"`
	URL              string `json:"url"`
}

func (at *Attachment) BeforeCreate(tx *gorm.DB) error {
	if at.ID == "" {
		at.ID = uuid.New().String()
	}
	return nil
}

func (Attachment) TableName() string {
	return "attachments"
}
