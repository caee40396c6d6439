package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/pkg/chat"

	"github.com/google/uuid"
)

// Manager owns one conversation on the client: its messages, its conversation
// id and the visitor id. Storage writes are best-effort; a failed write leaves
// the in-memory state authoritative for the rest of the session.
type Manager struct {
	storage Storage
	scope   string
	welcome chat.Message
	logger  logger.ILogger
	newID   func() string

	mu             sync.Mutex
	messages       []chat.Message
	conversationID string
	visitorID      string
}

// NewManager creates a manager holding only the welcome message. Call
// Restore to load a persisted conversation.
func NewManager(storage Storage, scope, welcome string, log logger.ILogger) *Manager {
	w := chat.Message{Role: chat.RoleBot, Content: welcome}
	return &Manager{
		storage:  storage,
		scope:    scope,
		welcome:  w,
		logger:   log,
		newID:    uuid.NewString,
		messages: []chat.Message{w},
	}
}

// Restore loads the persisted message list and conversation id. A stored list
// must open with the bot's welcome and hold more than it, otherwise it is ignored.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if raw, found, err := m.storage.Get(ctx, MessagesKey(m.scope)); err != nil {
		m.warn("Failed to read stored messages", err)
	} else if found {
		var stored []chat.Message
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			m.warn("Discarding unreadable stored messages", err)
		} else if len(stored) > 1 && stored[0].Role == chat.RoleBot {
			m.messages = stored
		}
	}

	if id, found, err := m.storage.Get(ctx, ConversationIDKey(m.scope)); err != nil {
		m.warn("Failed to read stored conversation id", err)
	} else if found && strings.TrimSpace(id) != "" {
		m.conversationID = strings.TrimSpace(id)
	}
}

// VisitorID returns the client's visitor id, creating and storing it the first
// time it is read as absent.
func (m *Manager) VisitorID(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.visitorID != "" {
		return m.visitorID
	}

	if id, found, err := m.storage.Get(ctx, VisitorIDKey()); err != nil {
		m.warn("Failed to read visitor id", err)
	} else if found && id != "" {
		m.visitorID = id
		return id
	}

	m.visitorID = m.newID()
	if err := m.storage.Set(ctx, VisitorIDKey(), m.visitorID); err != nil {
		m.warn("Failed to store visitor id", err)
	}
	return m.visitorID
}

// Messages returns a copy of the conversation, welcome message first
func (m *Manager) Messages() []chat.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]chat.Message(nil), m.messages...)
}

func (m *Manager) ConversationID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conversationID
}

// Append adds a message at the tail and persists the list once it holds more
// than the welcome message.
func (m *Manager) Append(ctx context.Context, msg chat.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)
	if len(m.messages) > 1 {
		m.persistMessages(ctx)
	}
}

// SetConversationID records the conversation id and persists it. Empty ids
// are ignored.
func (m *Manager) SetConversationID(ctx context.Context, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.conversationID = id
	if err := m.storage.Set(ctx, ConversationIDKey(m.scope), id); err != nil {
		m.warn("Failed to store conversation id", err)
	}
}

func (m *Manager) persistMessages(ctx context.Context) {
	raw, err := json.Marshal(m.messages)
	if err != nil {
		m.warn("Failed to encode messages", err)
		return
	}
	if err := m.storage.Set(ctx, MessagesKey(m.scope), string(raw)); err != nil {
		m.warn("Failed to store messages", err)
	}
}

func (m *Manager) warn(message string, err error) {
	m.logger.Warn("SESSION", message, map[string]interface{}{
		"scope": m.scope,
		"error": err.Error(),
	})
}
