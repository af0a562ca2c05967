package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CtIaMbaCK/betterus-server/internal/auth"
	"github.com/CtIaMbaCK/betterus-server/internal/common"
)

// ListConversationsHandler handles GET /api/v1/chat/conversations
func ListConversationsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		views, err := deps.Services.Chat.ListConversations(r.Context(), claims.UserID())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Conversations fetched", views)
	}
}

// GetMessagesHandler handles GET /api/v1/chat/conversations/{id}/messages
func GetMessagesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		views, err := deps.Services.Chat.GetMessages(r.Context(), claims.UserID(), chi.URLParam(r, "id"), page, limit)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Messages fetched", views)
	}
}

// MarkConversationReadHandler handles POST /api/v1/chat/conversations/{id}/read
//
// REST twin of the websocket mark_conversation_read event, for clients
// without an open socket.
func MarkConversationReadHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := deps.Services.Chat.MarkConversationRead(r.Context(), claims.UserID(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Conversation marked read", nil)
	}
}

// SearchChatUsersHandler handles GET /api/v1/chat/users?search=
func SearchChatUsersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		views, err := deps.Services.Chat.SearchUsers(r.Context(), claims.UserID(), r.URL.Query().Get("search"), limit)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Users fetched", views)
	}
}

func (h *Handlers) ListConversations() http.HandlerFunc { return ListConversationsHandler(h.deps) }
func (h *Handlers) GetMessages() http.HandlerFunc       { return GetMessagesHandler(h.deps) }
func (h *Handlers) MarkConversationRead() http.HandlerFunc {
	return MarkConversationReadHandler(h.deps)
}
func (h *Handlers) SearchChatUsers() http.HandlerFunc { return SearchChatUsersHandler(h.deps) }
