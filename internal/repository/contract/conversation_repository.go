package contract

import (
	"context"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/repository/specification"
)

// ConversationTurnRepository is append-only
type ConversationTurnRepository interface {
	Create(ctx context.Context, turn *entity.ConversationTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	Update(ctx context.Context, lead *entity.Lead) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error)
}
