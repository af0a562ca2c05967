package constants

// Websocket event names exchanged on the chat gateway. Client-emitted events
// come first, server-emitted ones after.
const (
	EventSendMessage          = "send_message"
	EventMarkConversationRead = "mark_conversation_read"
	EventTyping               = "typing"

	EventNewMessage  = "new_message"
	EventMessageSent = "message_sent"
	EventUserTyping  = "user_typing"
	EventError       = "error"
)

// NotificationStream is the Redis stream that buffers outbound notification
// jobs (chat pushes, status-change notices) for the worker.
const NotificationStream = "betterus:notifications"

// NotificationGroup is the consumer group name on NotificationStream.
const NotificationGroup = "notification-workers"
