package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/CtIaMbaCK/betterus-server/internal/auth"
	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/logging"
	"github.com/CtIaMbaCK/betterus-server/internal/metrics"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Token auth happens before the upgrade; cross-origin pages are allowed
	// to connect since the browser client is served separately.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub owns the registry of connected chat clients and routes events between
// them. All registry mutations go through the run loop, so no locks are held
// while fanning out.
type Hub struct {
	chatService *services.ChatService
	metrics     *metrics.MetricsRegistry

	clients    map[string]map[*Client]bool // userID -> connections
	register   chan *Client
	unregister chan *Client
	outbound   chan directedEvent
}

type directedEvent struct {
	userID string
	client *Client // when set, deliver to this connection only
	event  dtos.ChatEvent
}

func NewHub(chatService *services.ChatService, metricsReg *metrics.MetricsRegistry) *Hub {
	return &Hub{
		chatService: chatService,
		metrics:     metricsReg,
		clients:     make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		outbound:    make(chan directedEvent, 256),
	}
}

// Run processes registry changes and outbound fan-out. Start it once, in its
// own goroutine, before serving connections.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			if h.metrics != nil {
				h.metrics.WSConnectionsActive.Inc()
			}

		case client := <-h.unregister:
			h.drop(client)

		case de := <-h.outbound:
			if de.client != nil {
				// Directed events are skipped if the connection was dropped
				// while the event was queued; its channel is already closed.
				if h.clients[de.client.userID][de.client] {
					h.deliver(de.client, de.event)
				}
				continue
			}
			for client := range h.clients[de.userID] {
				h.deliver(client, de.event)
			}
		}
	}
}

// deliver hands one event to one connection. Run-loop only.
func (h *Hub) deliver(client *Client, event dtos.ChatEvent) {
	select {
	case client.send <- event:
	default:
		// Slow consumer; drop the connection rather than block the hub.
		h.drop(client)
	}
}

// drop removes a connection from the registry and closes its send channel.
// Run-loop only, so the close never races a send.
func (h *Hub) drop(client *Client) {
	conns := h.clients[client.userID]
	if !conns[client] {
		return
	}
	delete(conns, client)
	close(client.send)
	if len(conns) == 0 {
		delete(h.clients, client.userID)
	}
	if h.metrics != nil {
		h.metrics.WSConnectionsActive.Dec()
	}
}

// ServeWS upgrades an authenticated request to a chat connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserClaims(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Websocket upgrade failed", "error", err.Error())
		return
	}

	client := newClient(h, conn, claims.UserID())
	h.register <- client

	go client.writePump()
	go client.readPump()

	logging.Info("Chat client connected", "user_id", claims.UserID())
}

// SendToUser queues an event for every connection the user holds. Safe to
// call from any goroutine.
func (h *Hub) SendToUser(userID string, event dtos.ChatEvent) {
	h.outbound <- directedEvent{userID: userID, event: event}
}

// sendToClient queues an event for one specific connection. The run loop
// owns every send on client.send, so callers never race its close.
func (h *Hub) sendToClient(c *Client, event dtos.ChatEvent) {
	h.outbound <- directedEvent{client: c, event: event}
}

// handleEvent dispatches one client-emitted frame.
func (h *Hub) handleEvent(c *Client, event dtos.ChatEvent) {
	if h.metrics != nil {
		h.metrics.ChatEventsTotal.WithLabelValues(event.Event).Inc()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch event.Event {
	case constants.EventSendMessage:
		h.handleSendMessage(ctx, c, event.Payload)
	case constants.EventMarkConversationRead:
		h.handleMarkRead(ctx, c, event.Payload)
	case constants.EventTyping:
		h.handleTyping(ctx, c, event.Payload)
	default:
		h.sendError(c, "unknown event: "+event.Event)
	}
}

// handleSendMessage persists the message, echoes message_sent (carrying the
// client correlation id) to the sender, and fans new_message out to the
// recipient's connections.
func (h *Hub) handleSendMessage(ctx context.Context, c *Client, raw any) {
	var payload dtos.SendMessagePayload
	if !decodePayload(raw, &payload) {
		h.sendError(c, "malformed send_message payload")
		return
	}

	view, conv, err := h.chatService.SendMessage(ctx, c.userID, &payload)
	if err != nil {
		h.sendError(c, userFacingError(err))
		return
	}

	h.sendToClient(c, dtos.ChatEvent{Event: constants.EventMessageSent, Payload: view})
	h.SendToUser(conv.OtherParticipant(c.userID), dtos.ChatEvent{
		Event:   constants.EventNewMessage,
		Payload: view,
	})
}

func (h *Hub) handleMarkRead(ctx context.Context, c *Client, raw any) {
	var payload dtos.MarkReadPayload
	if !decodePayload(raw, &payload) || payload.ConversationID == "" {
		h.sendError(c, "malformed mark_conversation_read payload")
		return
	}
	if err := h.chatService.MarkConversationRead(ctx, c.userID, payload.ConversationID); err != nil {
		h.sendError(c, userFacingError(err))
	}
}

// handleTyping relays the indicator to the other participant. Nothing is
// persisted; a dropped typing frame is harmless.
func (h *Hub) handleTyping(ctx context.Context, c *Client, raw any) {
	var payload dtos.TypingPayload
	if !decodePayload(raw, &payload) || payload.ConversationID == "" {
		return
	}
	if !c.typingLimiter.Allow() {
		return
	}

	other, err := h.chatService.OtherParticipant(ctx, c.userID, payload.ConversationID)
	if err != nil {
		return
	}
	h.SendToUser(other, dtos.ChatEvent{
		Event: constants.EventUserTyping,
		Payload: dtos.UserTypingPayload{
			ConversationID: payload.ConversationID,
			UserID:         c.userID,
			IsTyping:       payload.IsTyping,
		},
	})
}

func (h *Hub) sendError(c *Client, message string) {
	h.sendToClient(c, dtos.ChatEvent{
		Event:   constants.EventError,
		Payload: dtos.ChatErrorPayload{Message: message},
	})
}

// decodePayload re-marshals the untyped payload into the event struct.
func decodePayload(raw any, dst any) bool {
	data, err := json.Marshal(raw)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// userFacingError maps service errors to messages safe to show the client.
func userFacingError(err error) string {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		return "conversation not found"
	case errors.Is(err, services.ErrForbidden):
		return "not a participant of this conversation"
	default:
		logging.Error("Chat event failed", "error", err.Error())
		return "internal error"
	}
}
