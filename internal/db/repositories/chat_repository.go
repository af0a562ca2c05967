package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// normalizePair orders the participant pair so the same two users always map
// to the same conversation row regardless of who wrote first.
func normalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

func (r *ChatRepository) GetOrCreateConversation(ctx context.Context, userA, userB string) (*entities.Conversation, error) {
	a, b := normalizePair(userA, userB)

	var conv entities.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a_id = ? AND participant_b_id = ?", a, b).
		First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}

	conv = entities.Conversation{ParticipantAID: a, ParticipantBID: b}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conv, nil
}

func (r *ChatRepository) GetConversation(ctx context.Context, id string) (*entities.Conversation, error) {
	var conv entities.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	return &conv, nil
}

// ListConversations returns the user's conversations most-recent-first with
// both participants preloaded for name resolution.
func (r *ChatRepository) ListConversations(ctx context.Context, userID string) ([]entities.Conversation, error) {
	var convs []entities.Conversation
	err := r.db.WithContext(ctx).
		Preload("ParticipantA").
		Preload("ParticipantA.VolunteerProfile").
		Preload("ParticipantA.BeneficiaryProfile").
		Preload("ParticipantA.OrganizationProfile").
		Preload("ParticipantB").
		Preload("ParticipantB.VolunteerProfile").
		Preload("ParticipantB.BeneficiaryProfile").
		Preload("ParticipantB.OrganizationProfile").
		Where("participant_a_id = ? OR participant_b_id = ?", userID, userID).
		Order("last_sent_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

// CreateMessage persists the message and refreshes the conversation's
// last-message snapshot in one transaction, so list ordering and previews
// never drift from the message table.
func (r *ChatRepository) CreateMessage(ctx context.Context, m *entities.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		return tx.Model(&entities.Conversation{}).
			Where("id = ?", m.ConversationID).
			Updates(map[string]any{
				"last_content":   m.Content,
				"last_sender_id": m.SenderID,
				"last_sent_at":   m.CreatedAt,
			}).Error
	})
}

// ListMessages returns one page of messages, oldest first within the page,
// paging backwards from the newest.
func (r *ChatRepository) ListMessages(ctx context.Context, conversationID string, page, limit int) ([]entities.Message, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var msgs []entities.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	// Reverse into chronological order for rendering.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// MarkConversationRead flags every message the reader received as read.
func (r *ChatRepository) MarkConversationRead(ctx context.Context, conversationID, readerID string) error {
	err := r.db.WithContext(ctx).Model(&entities.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark conversation read: %w", err)
	}
	return nil
}

// HasUnread reports whether the reader has unread messages in the
// conversation.
func (r *ChatRepository) HasUnread(ctx context.Context, conversationID, readerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count > 0, nil
}
