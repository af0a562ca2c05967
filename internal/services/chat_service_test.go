package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

func newChatService(t *testing.T, gdb *gorm.DB) *ChatService {
	t.Helper()
	return NewChatService(
		repositories.NewChatRepository(gdb),
		repositories.NewUserRepository(gdb),
		nil, nil,
	)
}

func TestChatService_SendMessage_CreatesConversation(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newChatService(t, gdb)
	ctx := context.Background()

	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)
	ben := seedBeneficiaryUser(t, gdb, "ben@example.com", "Nguyen Thi Em", constants.UserActive, nil)

	view, conv, err := svc.SendMessage(ctx, vol.ID, &dtos.SendMessagePayload{
		RecipientID: ben.ID,
		Content:     "Hello, I saw your request",
		ClientID:    "client-abc",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if conv == nil || conv.ID == "" {
		t.Fatal("Expected a conversation to be created")
	}
	if view.ClientID != "client-abc" {
		t.Errorf("Expected the client id echoed back, got %q", view.ClientID)
	}

	// A follow-up by conversation id lands in the same thread.
	_, conv2, err := svc.SendMessage(ctx, ben.ID, &dtos.SendMessagePayload{
		ConversationID: conv.ID,
		Content:        "Thank you!",
	})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if conv2.ID != conv.ID {
		t.Errorf("Reply created a new conversation: %s vs %s", conv2.ID, conv.ID)
	}

	msgs, err := svc.GetMessages(ctx, vol.ID, conv.ID, 1, 50)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "Hello, I saw your request" {
		t.Errorf("Expected chronological order, first was %q", msgs[0].Content)
	}
}

func TestChatService_SendMessage_Validation(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newChatService(t, gdb)
	ctx := context.Background()

	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)

	var verr *ValidationError

	_, _, err := svc.SendMessage(ctx, vol.ID, &dtos.SendMessagePayload{RecipientID: vol.ID, Content: "hi"})
	if !errors.As(err, &verr) {
		t.Fatalf("Expected a validation error for self-messaging, got %v", err)
	}

	_, _, err = svc.SendMessage(ctx, vol.ID, &dtos.SendMessagePayload{RecipientID: uuid.NewString(), Content: "   "})
	if !errors.As(err, &verr) || verr.Field != "content" {
		t.Fatalf("Expected a content validation error, got %v", err)
	}

	_, _, err = svc.SendMessage(ctx, vol.ID, &dtos.SendMessagePayload{RecipientID: uuid.NewString(), Content: "hi"})
	if !errors.As(err, &verr) || verr.Field != "recipientId" {
		t.Fatalf("Expected an unknown-recipient error, got %v", err)
	}

	_, _, err = svc.SendMessage(ctx, vol.ID, &dtos.SendMessagePayload{Content: "hi"})
	if !errors.As(err, &verr) {
		t.Fatalf("Expected an error without conversation or recipient, got %v", err)
	}
}

func TestChatService_GetMessages_NonParticipant(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newChatService(t, gdb)
	ctx := context.Background()

	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)
	ben := seedBeneficiaryUser(t, gdb, "ben@example.com", "Nguyen Thi Em", constants.UserActive, nil)
	stranger := seedVolunteerUser(t, gdb, "stranger@example.com", "Le Van Cuong", constants.UserActive, nil)

	_, conv, err := svc.SendMessage(ctx, vol.ID, &dtos.SendMessagePayload{RecipientID: ben.ID, Content: "hi"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if _, err := svc.GetMessages(ctx, stranger.ID, conv.ID, 1, 50); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetMessages(ctx, vol.ID, uuid.NewString(), 1, 50); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestChatService_ListConversations_UnreadFlag(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newChatService(t, gdb)
	ctx := context.Background()

	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)
	ben := seedBeneficiaryUser(t, gdb, "ben@example.com", "Nguyen Thi Em", constants.UserActive, nil)

	_, conv, err := svc.SendMessage(ctx, vol.ID, &dtos.SendMessagePayload{RecipientID: ben.ID, Content: "hello there"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	// The recipient sees the thread as unread, the sender does not.
	benConvs, err := svc.ListConversations(ctx, ben.ID)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(benConvs) != 1 {
		t.Fatalf("Expected 1 conversation, got %d", len(benConvs))
	}
	if benConvs[0].IsRead {
		t.Error("Expected the recipient's thread to be unread")
	}
	if benConvs[0].OtherUser != "Tran Van An" {
		t.Errorf("Expected the other participant's name, got %q", benConvs[0].OtherUser)
	}
	if benConvs[0].LastContent != "hello there" {
		t.Errorf("Expected the last-message preview, got %q", benConvs[0].LastContent)
	}

	volConvs, err := svc.ListConversations(ctx, vol.ID)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if !volConvs[0].IsRead {
		t.Error("Expected the sender's thread to be read")
	}

	if err := svc.MarkConversationRead(ctx, ben.ID, conv.ID); err != nil {
		t.Fatalf("MarkConversationRead failed: %v", err)
	}
	benConvs, err = svc.ListConversations(ctx, ben.ID)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if !benConvs[0].IsRead {
		t.Error("Expected the thread read after marking")
	}
}

func TestChatService_SearchUsers_OrdersByRole(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newChatService(t, gdb)
	ctx := context.Background()

	caller := seedVolunteerUser(t, gdb, "caller@example.com", "Team Caller", constants.UserActive, nil)
	seedVolunteerUser(t, gdb, "vol@example.com", "Team Player", constants.UserActive, nil)
	seedOrganizationUser(t, gdb, "org@example.com", "Team Hope")
	seedUser(t, gdb, "team.lead@example.com", constants.RoleAdmin, constants.UserActive)
	// Inactive accounts never surface.
	seedVolunteerUser(t, gdb, "banned@example.com", "Team Ghost", constants.UserBanned, nil)

	views, err := svc.SearchUsers(ctx, caller.ID, "Team", 20)
	if err != nil {
		t.Fatalf("SearchUsers failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(views))
	}
	wantOrder := []string{"ADMIN", "ORGANIZATION", "VOLUNTEER"}
	for i, want := range wantOrder {
		if views[i].Role != want {
			t.Errorf("Position %d: expected role %s, got %s", i, want, views[i].Role)
		}
	}
	for _, v := range views {
		if v.ID == caller.ID {
			t.Error("The caller must not appear in their own search results")
		}
	}
}

func TestChatService_SearchUsers_EmptyQuery(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newChatService(t, gdb)

	views, err := svc.SearchUsers(context.Background(), "caller", "   ", 20)
	if err != nil {
		t.Fatalf("SearchUsers failed: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("Expected no results for a blank query, got %d", len(views))
	}
}

func TestChatService_OtherParticipant(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newChatService(t, gdb)
	ctx := context.Background()

	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)
	ben := seedBeneficiaryUser(t, gdb, "ben@example.com", "Nguyen Thi Em", constants.UserActive, nil)
	stranger := seedVolunteerUser(t, gdb, "stranger@example.com", "Le Van Cuong", constants.UserActive, nil)

	_, conv, err := svc.SendMessage(ctx, vol.ID, &dtos.SendMessagePayload{RecipientID: ben.ID, Content: "hi"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	other, err := svc.OtherParticipant(ctx, vol.ID, conv.ID)
	if err != nil {
		t.Fatalf("OtherParticipant failed: %v", err)
	}
	if other != ben.ID {
		t.Errorf("Expected %s, got %s", ben.ID, other)
	}

	if _, err := svc.OtherParticipant(ctx, stranger.ID, conv.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for a stranger, got %v", err)
	}
}
