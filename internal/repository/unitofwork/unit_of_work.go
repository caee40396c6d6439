package unitofwork

import (
	"context"

	"realestate-chatbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TrainingQARepository() contract.TrainingQARepository
	FileContentRepository() contract.FileContentRepository
	PropertyRepository() contract.PropertyRepository

	ConversationTurnRepository() contract.ConversationTurnRepository
	LeadRepository() contract.LeadRepository

	FeatureRepository() contract.FeatureRepository
	AccountFeatureRepository() contract.AccountFeatureRepository
}
