package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/logging"
	"github.com/CtIaMbaCK/betterus-server/internal/metrics"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// ChatService backs both the REST chat endpoints and the websocket hub.
type ChatService struct {
	chats         *repositories.ChatRepository
	users         *repositories.UserRepository
	notifications *common.NotificationQueueService
	metrics       *metrics.MetricsRegistry
}

func NewChatService(chats *repositories.ChatRepository, users *repositories.UserRepository, notifications *common.NotificationQueueService, metricsReg *metrics.MetricsRegistry) *ChatService {
	return &ChatService{
		chats:         chats,
		users:         users,
		notifications: notifications,
		metrics:       metricsReg,
	}
}

// ListConversations returns the user's threads newest-first, each with the
// other participant's name and the reader's unread flag.
func (s *ChatService) ListConversations(ctx context.Context, userID string) ([]dtos.ConversationView, error) {
	convs, err := s.chats.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]dtos.ConversationView, 0, len(convs))
	for i := range convs {
		c := &convs[i]
		unread, err := s.chats.HasUnread(ctx, c.ID, userID)
		if err != nil {
			return nil, err
		}

		other := &c.ParticipantA
		if c.ParticipantAID == userID {
			other = &c.ParticipantB
		}
		views = append(views, dtos.ConversationView{
			ID:          c.ID,
			OtherUserID: other.ID,
			OtherUser:   other.DisplayName(),
			OtherRole:   other.Role.String(),
			LastContent: c.LastContent,
			LastSender:  c.LastSenderID,
			LastSentAt:  c.LastSentAt,
			IsRead:      !unread,
		})
	}
	return views, nil
}

// GetMessages returns one chronological page of a conversation the caller
// participates in.
func (s *ChatService) GetMessages(ctx context.Context, userID, conversationID string, page, limit int) ([]dtos.MessageView, error) {
	conv, err := s.getConversationFor(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.chats.ListMessages(ctx, conv.ID, page, limit)
	if err != nil {
		return nil, err
	}
	views := make([]dtos.MessageView, 0, len(msgs))
	for i := range msgs {
		views = append(views, toMessageView(&msgs[i]))
	}
	return views, nil
}

// SendMessage persists a message from sender. When conversationID is empty a
// conversation with recipientID is looked up or created, so the first message
// to a new contact needs no separate setup call. The stored ClientID lets the
// sending client reconcile its optimistic entry by correlation id.
func (s *ChatService) SendMessage(ctx context.Context, senderID string, p *dtos.SendMessagePayload) (*dtos.MessageView, *entities.Conversation, error) {
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, nil, &ValidationError{Field: "content", Message: "message content is required"}
	}

	var conv *entities.Conversation
	var err error
	switch {
	case p.ConversationID != "":
		conv, err = s.getConversationFor(ctx, senderID, p.ConversationID)
	case p.RecipientID != "":
		if p.RecipientID == senderID {
			return nil, nil, &ValidationError{Field: "recipientId", Message: "cannot message yourself"}
		}
		if _, err := s.users.GetByID(ctx, p.RecipientID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, nil, &ValidationError{Field: "recipientId", Message: "recipient not found"}
			}
			return nil, nil, err
		}
		conv, err = s.chats.GetOrCreateConversation(ctx, senderID, p.RecipientID)
	default:
		return nil, nil, &ValidationError{Field: "conversationId", Message: "conversation or recipient is required"}
	}
	if err != nil {
		return nil, nil, err
	}

	msg := &entities.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ClientID:       p.ClientID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, nil, err
	}

	if s.metrics != nil {
		s.metrics.ChatMessagesTotal.Inc()
	}

	s.queueMessageNotification(ctx, conv.OtherParticipant(senderID), content)

	view := toMessageView(msg)
	return &view, conv, nil
}

// MarkConversationRead flags everything the reader received as read.
func (s *ChatService) MarkConversationRead(ctx context.Context, userID, conversationID string) error {
	conv, err := s.getConversationFor(ctx, userID, conversationID)
	if err != nil {
		return err
	}
	return s.chats.MarkConversationRead(ctx, conv.ID, userID)
}

// SearchUsers powers the new-conversation search box. Results come back in a
// fixed role order so staff accounts surface first.
func (s *ChatService) SearchUsers(ctx context.Context, callerID, search string, limit int) ([]dtos.UserView, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return []dtos.UserView{}, nil
	}

	users, err := s.users.SearchForChat(ctx, search, limit)
	if err != nil {
		return nil, err
	}

	views := make([]dtos.UserView, 0, len(users))
	for i := range users {
		if users[i].ID == callerID {
			continue
		}
		views = append(views, toUserView(&users[i]))
	}
	sort.SliceStable(views, func(i, j int) bool {
		return constants.UserRole(views[i].Role).ChatSearchPriority() <
			constants.UserRole(views[j].Role).ChatSearchPriority()
	})
	return views, nil
}

// OtherParticipant verifies the caller belongs to the conversation and
// returns the other party's user id. Used by the hub for typing relays.
func (s *ChatService) OtherParticipant(ctx context.Context, userID, conversationID string) (string, error) {
	conv, err := s.getConversationFor(ctx, userID, conversationID)
	if err != nil {
		return "", err
	}
	return conv.OtherParticipant(userID), nil
}

func (s *ChatService) getConversationFor(ctx context.Context, userID, conversationID string) (*entities.Conversation, error) {
	conv, err := s.chats.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrForbidden
	}
	return conv, nil
}

func (s *ChatService) queueMessageNotification(ctx context.Context, recipientID, content string) {
	if s.notifications == nil {
		return
	}
	item := &common.NotificationItem{
		RecipientID: recipientID,
		Kind:        "new_message",
		Title:       "New message",
		Body:        truncatePreview(content, 80),
		CreatedAt:   time.Now(),
	}
	if err := s.notifications.Enqueue(ctx, constants.NotificationStream, item); err != nil {
		logging.Warn("Failed to queue chat notification", "error", err.Error())
		return
	}
	if s.metrics != nil {
		s.metrics.NotificationsQueued.Inc()
	}
}

// truncatePreview caps the preview at max runes; cutting on a byte boundary
// could split a multi-byte character.
func truncatePreview(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max])
}
