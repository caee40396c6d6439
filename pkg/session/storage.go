package session

import (
	"context"
	"errors"
)

const (
	messagesKeyPrefix       = "chatbot_messages_"
	conversationIDKeyPrefix = "chatbot_conversation_id_"
	visitorIDKey            = "chatbot_visitor_id"
)

// ErrStorageUnavailable marks a storage backend that cannot be reached
var ErrStorageUnavailable = errors.New("session storage unavailable")

// Storage is the client-local key/value store backing a chat session.
// Get reports found=false for a missing key; that is not an error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MessagesKey is the storage key of the serialized message list for a scope
func MessagesKey(scope string) string {
	return messagesKeyPrefix + scope
}

// ConversationIDKey is the storage key of the conversation id for a scope
func ConversationIDKey(scope string) string {
	return conversationIDKeyPrefix + scope
}

// VisitorIDKey is shared by every scope of one client
func VisitorIDKey() string {
	return visitorIDKey
}
