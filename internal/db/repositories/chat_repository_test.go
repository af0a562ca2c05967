package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open test database")
	require.NoError(t, db.Migrate(gdb), "migrate test schema")
	return gdb
}

func seedChatUser(t *testing.T, gdb *gorm.DB, email string) *entities.User {
	t.Helper()

	u := &entities.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         constants.RoleVolunteer,
		Status:       constants.UserActive,
	}
	require.NoError(t, gdb.Create(u).Error, "seed user")
	return u
}

func TestChatRepository_GetOrCreateConversation_NormalizesPair(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewChatRepository(gdb)
	ctx := context.Background()

	a := seedChatUser(t, gdb, "a@example.com")
	b := seedChatUser(t, gdb, "b@example.com")

	first, err := repo.GetOrCreateConversation(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// The reversed pair resolves to the same thread.
	second, err := repo.GetOrCreateConversation(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assert.True(t, first.ParticipantAID < first.ParticipantBID,
		"participants should be stored in normalized order")
}

func TestChatRepository_CreateMessage_UpdatesSnapshot(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewChatRepository(gdb)
	ctx := context.Background()

	a := seedChatUser(t, gdb, "a@example.com")
	b := seedChatUser(t, gdb, "b@example.com")

	conv, err := repo.GetOrCreateConversation(ctx, a.ID, b.ID)
	require.NoError(t, err)

	msg := &entities.Message{
		ConversationID: conv.ID,
		SenderID:       a.ID,
		Content:        "first message",
		CreatedAt:      time.Now(),
	}
	require.NoError(t, repo.CreateMessage(ctx, msg))

	reloaded, err := repo.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "first message", reloaded.LastContent)
	assert.Equal(t, a.ID, reloaded.LastSenderID)
}

func TestChatRepository_ListMessages_PagesChronologically(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewChatRepository(gdb)
	ctx := context.Background()

	a := seedChatUser(t, gdb, "a@example.com")
	b := seedChatUser(t, gdb, "b@example.com")

	conv, err := repo.GetOrCreateConversation(ctx, a.ID, b.ID)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"one", "two", "three"} {
		msg := &entities.Message{
			ConversationID: conv.ID,
			SenderID:       a.ID,
			Content:        content,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.CreateMessage(ctx, msg))
	}

	// Page 1 holds the newest two, oldest first within the page.
	page1, err := repo.ListMessages(ctx, conv.ID, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "two", page1[0].Content)
	assert.Equal(t, "three", page1[1].Content)

	page2, err := repo.ListMessages(ctx, conv.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "one", page2[0].Content)
}

func TestChatRepository_MarkConversationRead(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewChatRepository(gdb)
	ctx := context.Background()

	a := seedChatUser(t, gdb, "a@example.com")
	b := seedChatUser(t, gdb, "b@example.com")

	conv, err := repo.GetOrCreateConversation(ctx, a.ID, b.ID)
	require.NoError(t, err)

	require.NoError(t, repo.CreateMessage(ctx, &entities.Message{
		ConversationID: conv.ID,
		SenderID:       a.ID,
		Content:        "unread for b",
		CreatedAt:      time.Now(),
	}))

	unread, err := repo.HasUnread(ctx, conv.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, unread)

	// The sender has nothing unread in their own thread.
	unread, err = repo.HasUnread(ctx, conv.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, unread)

	require.NoError(t, repo.MarkConversationRead(ctx, conv.ID, b.ID))

	unread, err = repo.HasUnread(ctx, conv.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, unread)
}
