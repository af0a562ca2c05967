package dtos

// ChatEvent is the envelope for every frame on the chat websocket, in both
// directions. Payload holds the event-specific body.
type ChatEvent struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// SendMessagePayload starts or continues a conversation. ConversationID may
// be empty when RecipientID is set (first message to a user). ClientID is
// the sender-generated correlation id echoed back on message_sent.
type SendMessagePayload struct {
	ConversationID string `json:"conversationId,omitempty"`
	RecipientID    string `json:"recipientId,omitempty"`
	Content        string `json:"content"`
	ClientID       string `json:"clientId"`
}

type MarkReadPayload struct {
	ConversationID string `json:"conversationId"`
}

type TypingPayload struct {
	ConversationID string `json:"conversationId"`
	IsTyping       bool   `json:"isTyping"`
}

// UserTypingPayload is relayed to the other participant.
type UserTypingPayload struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	IsTyping       bool   `json:"isTyping"`
}

type ChatErrorPayload struct {
	Message string `json:"message"`
}
