package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/pkg/chat"
	"realestate-chatbot-be/pkg/session"
	"realestate-chatbot-be/pkg/session/drivers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const welcome = "Hi! How can I help you today?"

// flakyStorage wraps a real driver and fails writes for selected keys
type flakyStorage struct {
	session.Storage
	mu        sync.Mutex
	failSet   map[string]bool
	failGet   bool
	setCounts map[string]int
}

func newFlaky() *flakyStorage {
	return &flakyStorage{
		Storage:   drivers.NewMemoryStorage(),
		failSet:   map[string]bool{},
		setCounts: map[string]int{},
	}
}

func (f *flakyStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, session.ErrStorageUnavailable
	}
	return f.Storage.Get(ctx, key)
}

func (f *flakyStorage) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.setCounts[key]++
	fail := f.failSet[key]
	f.mu.Unlock()
	if fail {
		return errors.New("quota exceeded")
	}
	return f.Storage.Set(ctx, key, value)
}

func newManager(s session.Storage) *session.Manager {
	return session.NewManager(s, "site-1", welcome, logger.NewNopLogger())
}

func TestFreshManagerHoldsWelcome(t *testing.T) {
	m := newManager(drivers.NewMemoryStorage())
	m.Restore(context.Background())

	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, chat.Message{Role: chat.RoleBot, Content: welcome}, msgs[0])
	assert.Empty(t, m.ConversationID())
}

func TestAppendPersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	store := drivers.NewMemoryStorage()

	m := newManager(store)
	m.Append(ctx, chat.Message{Role: chat.RoleUser, Content: "hello"})
	m.SetConversationID(ctx, "abc")

	restored := newManager(store)
	restored.Restore(ctx)
	assert.Equal(t, m.Messages(), restored.Messages())
	assert.Equal(t, "abc", restored.ConversationID())
}

func TestRestoreIgnoresWelcomeOnlyList(t *testing.T) {
	ctx := context.Background()
	store := drivers.NewMemoryStorage()

	raw, _ := json.Marshal([]chat.Message{{Role: chat.RoleBot, Content: "old welcome"}})
	require.NoError(t, store.Set(ctx, session.MessagesKey("site-1"), string(raw)))
	require.NoError(t, store.Set(ctx, session.MessagesKey("site-2"), "not json"))

	m := newManager(store)
	m.Restore(ctx)
	assert.Equal(t, welcome, m.Messages()[0].Content)

	other := session.NewManager(store, "site-2", welcome, logger.NewNopLogger())
	other.Restore(ctx)
	assert.Len(t, other.Messages(), 1)
}

func TestRestoreRequiresLeadingWelcome(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		stored   []chat.Message
		restored bool
	}{
		{
			name: "welcome then user turn",
			stored: []chat.Message{
				{Role: chat.RoleBot, Content: "old welcome"},
				{Role: chat.RoleUser, Content: "hello"},
			},
			restored: true,
		},
		{
			name: "user turns without welcome",
			stored: []chat.Message{
				{Role: chat.RoleUser, Content: "hello"},
				{Role: chat.RoleUser, Content: "anyone there?"},
			},
			restored: false,
		},
		{
			name: "user turn first then bot reply",
			stored: []chat.Message{
				{Role: chat.RoleUser, Content: "hello"},
				{Role: chat.RoleBot, Content: "Hi there"},
			},
			restored: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := drivers.NewMemoryStorage()
			raw, err := json.Marshal(tt.stored)
			require.NoError(t, err)
			require.NoError(t, store.Set(ctx, session.MessagesKey("site-1"), string(raw)))

			m := newManager(store)
			m.Restore(ctx)

			if tt.restored {
				assert.Equal(t, tt.stored, m.Messages())
				return
			}
			require.Len(t, m.Messages(), 1)
			assert.Equal(t, chat.Message{Role: chat.RoleBot, Content: welcome}, m.Messages()[0])
		})
	}
}

func TestScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := drivers.NewMemoryStorage()

	a := session.NewManager(store, "a", welcome, logger.NewNopLogger())
	a.Append(ctx, chat.Message{Role: chat.RoleUser, Content: "for a"})
	a.SetConversationID(ctx, "conv-a")

	b := session.NewManager(store, "b", welcome, logger.NewNopLogger())
	b.Restore(ctx)
	assert.Len(t, b.Messages(), 1)
	assert.Empty(t, b.ConversationID())
}

func TestVisitorIDBootstrappedOnce(t *testing.T) {
	ctx := context.Background()
	store := newFlaky()

	m := newManager(store)
	first := m.VisitorID(ctx)
	require.NotEmpty(t, first)
	assert.Equal(t, first, m.VisitorID(ctx))
	assert.Equal(t, 1, store.setCounts[session.VisitorIDKey()])

	// another scope on the same client shares the visitor id
	other := session.NewManager(store, "site-2", welcome, logger.NewNopLogger())
	assert.Equal(t, first, other.VisitorID(ctx))
}

func TestWriteFailuresKeepConversationInMemory(t *testing.T) {
	ctx := context.Background()
	store := newFlaky()
	store.failSet[session.MessagesKey("site-1")] = true

	m := newManager(store)
	m.Append(ctx, chat.Message{Role: chat.RoleUser, Content: "hello"})
	m.Append(ctx, chat.Message{Role: chat.RoleBot, Content: "hi there"})
	m.SetConversationID(ctx, "abc")

	assert.Len(t, m.Messages(), 3)
	assert.Equal(t, "abc", m.ConversationID())

	// only the id write survived; a restore sees the id without the messages
	restored := newManager(store)
	restored.Restore(ctx)
	assert.Len(t, restored.Messages(), 1)
	assert.Equal(t, "abc", restored.ConversationID())
}

func TestIDWriteFailureKeepsMessages(t *testing.T) {
	ctx := context.Background()
	store := newFlaky()
	store.failSet[session.ConversationIDKey("site-1")] = true

	m := newManager(store)
	m.Append(ctx, chat.Message{Role: chat.RoleUser, Content: "hello"})
	m.SetConversationID(ctx, "abc")

	restored := newManager(store)
	restored.Restore(ctx)
	assert.Len(t, restored.Messages(), 2)
	assert.Empty(t, restored.ConversationID())
}

func TestReadFailureStartsFresh(t *testing.T) {
	store := newFlaky()
	store.failGet = true

	m := newManager(store)
	m.Restore(context.Background())
	assert.Len(t, m.Messages(), 1)
	assert.NotEmpty(t, m.VisitorID(context.Background()))
}

func TestSetConversationIDIgnoresEmpty(t *testing.T) {
	ctx := context.Background()
	m := newManager(drivers.NewMemoryStorage())
	m.SetConversationID(ctx, "abc")
	m.SetConversationID(ctx, "  ")
	assert.Equal(t, "abc", m.ConversationID())
}
