package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a two-party thread. ParticipantA/B are stored in creation
// order; the pair is unique regardless of direction (enforced by the
// repository, which normalizes the pair before lookup).
type Conversation struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	ParticipantAID string    `gorm:"column:participant_a_id;type:uuid;index:idx_conversation_pair,unique"`
	ParticipantBID string    `gorm:"column:participant_b_id;type:uuid;index:idx_conversation_pair,unique"`
	LastContent    string    `gorm:"column:last_content"`
	LastSenderID   string    `gorm:"column:last_sender_id;type:uuid"`
	LastSentAt     time.Time `gorm:"column:last_sent_at"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime;index"`

	// Relationships
	ParticipantA User `gorm:"foreignKey:ParticipantAID"`
	ParticipantB User `gorm:"foreignKey:ParticipantBID"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.ParticipantAID == userID {
		return c.ParticipantBID
	}
	return c.ParticipantAID
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.ParticipantAID == userID || c.ParticipantBID == userID
}

// Message carries the sender-generated ClientID so optimistic entries on the
// sending client can be reconciled by correlation id instead of a sentinel.
type Message struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	ConversationID string    `gorm:"column:conversation_id;type:uuid;index"`
	SenderID       string    `gorm:"column:sender_id;type:uuid;index"`
	ClientID       string    `gorm:"column:client_id"`
	Content        string    `gorm:"column:content"`
	IsRead         bool      `gorm:"column:is_read;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
