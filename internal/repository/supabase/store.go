package supabase

import (
	"context"
	"fmt"
	"time"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/repository/contract"
	"realestate-chatbot-be/pkg/lead"
	"realestate-chatbot-be/pkg/training"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

type Config struct {
	URL    string
	APIKey string
}

// Store reads and writes the chatbot tables through the Supabase REST API.
// Table and column names match the gorm models.
type Store struct {
	client *supabase.Client
}

var _ contract.ChatbotStore = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) QAPairs(ctx context.Context, accountID uuid.UUID) ([]training.QAPair, error) {
	var rows []qaRow
	_, err := s.client.From("training_qa").
		Select("*", "", false).
		Eq("account_id", accountID.String()).
		Is("deleted_at", "null").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get qa pairs: %w", err)
	}

	out := make([]training.QAPair, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}

func (s *Store) FileContents(ctx context.Context, accountID uuid.UUID) ([]training.FileContent, error) {
	var rows []fileRow
	_, err := s.client.From("file_contents").
		Select("*", "", false).
		Eq("account_id", accountID.String()).
		Is("deleted_at", "null").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get file contents: %w", err)
	}

	out := make([]training.FileContent, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}

func (s *Store) Properties(ctx context.Context, accountID uuid.UUID) ([]training.Property, error) {
	var rows []propertyRow
	_, err := s.client.From("properties").
		Select("*", "", false).
		Eq("account_id", accountID.String()).
		Is("deleted_at", "null").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get properties: %w", err)
	}

	out := make([]training.Property, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}

func (s *Store) AppendTurn(ctx context.Context, turn *entity.ConversationTurn) error {
	if turn.Id == uuid.Nil {
		turn.Id = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	_, _, err := s.client.From("conversation_turns").
		Insert(turnRowFrom(turn), false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

func (s *Store) ListTurns(ctx context.Context, accountID uuid.UUID, conversationID string) ([]*entity.ConversationTurn, error) {
	var rows []turnRow
	_, err := s.client.From("conversation_turns").
		Select("*", "", false).
		Eq("account_id", accountID.String()).
		Eq("conversation_id", conversationID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Order("id", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}

	out := make([]*entity.ConversationTurn, len(rows))
	for i := range rows {
		out[i] = rows[i].toEntity()
	}
	return out, nil
}

// UpsertLead reads, merges, then upserts on (account_id, visitor_id). The
// REST API has no transaction, so two concurrent merges for the same visitor
// can lose a field; the lead consumer serializes per process.
func (s *Store) UpsertLead(ctx context.Context, accountID uuid.UUID, visitorID, conversationID string, info lead.VisitorInfo) (*entity.Lead, error) {
	var rows []leadRow
	_, err := s.client.From("leads").
		Select("*", "", false).
		Eq("account_id", accountID.String()).
		Eq("visitor_id", visitorID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	now := time.Now()
	current := &entity.Lead{
		Id:        uuid.New(),
		AccountId: accountID,
		VisitorId: visitorID,
		CreatedAt: now,
	}
	if len(rows) > 0 {
		current = rows[0].toEntity()
		current.UpdatedAt = &now
	}
	current.Absorb(info)
	if conversationID != "" {
		current.ConversationId = conversationID
	}

	_, _, err = s.client.From("leads").
		Upsert(leadRowFrom(current), "account_id,visitor_id", "minimal", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to upsert lead: %w", err)
	}
	return current, nil
}

func (s *Store) HasFeature(ctx context.Context, accountID uuid.UUID, feature string) (bool, error) {
	var catalog []featureRow
	_, err := s.client.From("features").
		Select("key,is_active", "", false).
		Eq("key", feature).
		ExecuteTo(&catalog)
	if err != nil {
		return false, fmt.Errorf("failed to get feature: %w", err)
	}
	if len(catalog) == 0 || !catalog[0].IsActive {
		return false, nil
	}

	var grants []accountFeatureRow
	_, err = s.client.From("account_features").
		Select("enabled", "", false).
		Eq("account_id", accountID.String()).
		Eq("feature_key", feature).
		ExecuteTo(&grants)
	if err != nil {
		return false, fmt.Errorf("failed to get account feature: %w", err)
	}
	return len(grants) > 0 && grants[0].Enabled, nil
}
