package contract

import (
	"context"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/pkg/lead"
	"realestate-chatbot-be/pkg/training"

	"github.com/google/uuid"
)

// ChatbotStore is everything the chatbot reads and writes, independent of the
// data backend (postgres through gorm, or supabase).
type ChatbotStore interface {
	training.Source

	AppendTurn(ctx context.Context, turn *entity.ConversationTurn) error
	ListTurns(ctx context.Context, accountID uuid.UUID, conversationID string) ([]*entity.ConversationTurn, error)

	// UpsertLead merges info into the account's lead for visitorID
	UpsertLead(ctx context.Context, accountID uuid.UUID, visitorID, conversationID string, info lead.VisitorInfo) (*entity.Lead, error)

	HasFeature(ctx context.Context, accountID uuid.UUID, feature string) (bool, error)
}
