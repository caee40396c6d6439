package memory

import (
	"context"
	"sync"
	"time"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/repository/contract"
	"realestate-chatbot-be/pkg/lead"
	"realestate-chatbot-be/pkg/training"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ChatbotStore keeps everything in process memory. It backs local runs
// without a database and service tests.
type ChatbotStore struct {
	cache *cache.Cache
	mu    sync.Mutex
}

var _ contract.ChatbotStore = (*ChatbotStore)(nil)

func NewChatbotStore() *ChatbotStore {
	return &ChatbotStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func key(kind string, accountID uuid.UUID, rest ...string) string {
	k := kind + ":" + accountID.String()
	for _, r := range rest {
		k += ":" + r
	}
	return k
}

func load[T any](c *cache.Cache, k string) []T {
	if x, found := c.Get(k); found {
		return x.([]T)
	}
	return nil
}

func (s *ChatbotStore) SeedQA(accountID uuid.UUID, pairs ...training.QAPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key("qa", accountID)
	s.cache.Set(k, append(load[training.QAPair](s.cache, k), pairs...), cache.NoExpiration)
}

func (s *ChatbotStore) SeedFiles(accountID uuid.UUID, files ...training.FileContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key("files", accountID)
	s.cache.Set(k, append(load[training.FileContent](s.cache, k), files...), cache.NoExpiration)
}

func (s *ChatbotStore) SeedProperties(accountID uuid.UUID, props ...training.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key("properties", accountID)
	s.cache.Set(k, append(load[training.Property](s.cache, k), props...), cache.NoExpiration)
}

func (s *ChatbotStore) GrantFeature(accountID uuid.UUID, feature string, enabled bool) {
	s.cache.Set(key("feature", accountID, feature), enabled, cache.NoExpiration)
}

func (s *ChatbotStore) QAPairs(_ context.Context, accountID uuid.UUID) ([]training.QAPair, error) {
	return load[training.QAPair](s.cache, key("qa", accountID)), nil
}

func (s *ChatbotStore) FileContents(_ context.Context, accountID uuid.UUID) ([]training.FileContent, error) {
	return load[training.FileContent](s.cache, key("files", accountID)), nil
}

func (s *ChatbotStore) Properties(_ context.Context, accountID uuid.UUID) ([]training.Property, error) {
	return load[training.Property](s.cache, key("properties", accountID)), nil
}

func (s *ChatbotStore) AppendTurn(_ context.Context, turn *entity.ConversationTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if turn.Id == uuid.Nil {
		turn.Id = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	k := key("turns", turn.AccountId, turn.ConversationId)
	stored := *turn
	s.cache.Set(k, append(load[*entity.ConversationTurn](s.cache, k), &stored), cache.NoExpiration)
	return nil
}

func (s *ChatbotStore) ListTurns(_ context.Context, accountID uuid.UUID, conversationID string) ([]*entity.ConversationTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := load[*entity.ConversationTurn](s.cache, key("turns", accountID, conversationID))
	return append([]*entity.ConversationTurn(nil), turns...), nil
}

func (s *ChatbotStore) UpsertLead(_ context.Context, accountID uuid.UUID, visitorID, conversationID string, info lead.VisitorInfo) (*entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key("lead", accountID, visitorID)
	var current entity.Lead
	if x, found := s.cache.Get(k); found {
		current = x.(entity.Lead)
		now := time.Now()
		current.UpdatedAt = &now
	} else {
		current = entity.Lead{
			Id:        uuid.New(),
			AccountId: accountID,
			VisitorId: visitorID,
			CreatedAt: time.Now(),
		}
	}
	current.Absorb(info)
	if conversationID != "" {
		current.ConversationId = conversationID
	}
	s.cache.Set(k, current, cache.NoExpiration)

	out := current
	return &out, nil
}

// Lead returns the stored lead for a visitor, if any
func (s *ChatbotStore) Lead(accountID uuid.UUID, visitorID string) (*entity.Lead, bool) {
	if x, found := s.cache.Get(key("lead", accountID, visitorID)); found {
		l := x.(entity.Lead)
		return &l, true
	}
	return nil, false
}

// HasFeature reports features as granted unless explicitly disabled
func (s *ChatbotStore) HasFeature(_ context.Context, accountID uuid.UUID, feature string) (bool, error) {
	if x, found := s.cache.Get(key("feature", accountID, feature)); found {
		return x.(bool), nil
	}
	return true, nil
}
