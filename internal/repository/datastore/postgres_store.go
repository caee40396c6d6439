package datastore

import (
	"context"
	"fmt"
	"time"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/mapper"
	"realestate-chatbot-be/internal/repository/contract"
	"realestate-chatbot-be/internal/repository/specification"
	"realestate-chatbot-be/internal/repository/unitofwork"
	"realestate-chatbot-be/pkg/lead"
	"realestate-chatbot-be/pkg/training"

	"github.com/google/uuid"
)

// PostgresStore serves the chatbot from postgres through gorm repositories
type PostgresStore struct {
	uowFactory unitofwork.RepositoryFactory
	mapper     *mapper.TrainingMapper
}

var _ contract.ChatbotStore = (*PostgresStore)(nil)

func NewPostgresStore(uowFactory unitofwork.RepositoryFactory) *PostgresStore {
	return &PostgresStore{uowFactory: uowFactory, mapper: mapper.NewTrainingMapper()}
}

func (s *PostgresStore) QAPairs(ctx context.Context, accountID uuid.UUID) ([]training.QAPair, error) {
	rows, err := s.uowFactory.NewUnitOfWork(ctx).TrainingQARepository().FindAll(ctx,
		specification.ByAccountID{AccountID: accountID},
	)
	if err != nil {
		return nil, fmt.Errorf("load qa pairs: %w", err)
	}
	out := make([]training.QAPair, len(rows))
	for i, row := range rows {
		out[i] = s.mapper.QAToDomain(row)
	}
	return out, nil
}

func (s *PostgresStore) FileContents(ctx context.Context, accountID uuid.UUID) ([]training.FileContent, error) {
	rows, err := s.uowFactory.NewUnitOfWork(ctx).FileContentRepository().FindAll(ctx,
		specification.ByAccountID{AccountID: accountID},
	)
	if err != nil {
		return nil, fmt.Errorf("load file contents: %w", err)
	}
	out := make([]training.FileContent, len(rows))
	for i, row := range rows {
		out[i] = s.mapper.FileToDomain(row)
	}
	return out, nil
}

func (s *PostgresStore) Properties(ctx context.Context, accountID uuid.UUID) ([]training.Property, error) {
	rows, err := s.uowFactory.NewUnitOfWork(ctx).PropertyRepository().FindAll(ctx,
		specification.ByAccountID{AccountID: accountID},
	)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	out := make([]training.Property, len(rows))
	for i, row := range rows {
		out[i] = s.mapper.PropertyToDomain(row)
	}
	return out, nil
}

func (s *PostgresStore) AppendTurn(ctx context.Context, turn *entity.ConversationTurn) error {
	if turn.Id == uuid.Nil {
		turn.Id = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	return s.uowFactory.NewUnitOfWork(ctx).ConversationTurnRepository().Create(ctx, turn)
}

func (s *PostgresStore) ListTurns(ctx context.Context, accountID uuid.UUID, conversationID string) ([]*entity.ConversationTurn, error) {
	return s.uowFactory.NewUnitOfWork(ctx).ConversationTurnRepository().FindAll(ctx,
		specification.ByAccountID{AccountID: accountID},
		specification.ByConversationID{ConversationID: conversationID},
		specification.ArrivalOrder{},
	)
}

func (s *PostgresStore) UpsertLead(ctx context.Context, accountID uuid.UUID, visitorID, conversationID string, info lead.VisitorInfo) (*entity.Lead, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.LeadRepository()
	existing, err := repo.FindOne(ctx,
		specification.ByAccountID{AccountID: accountID},
		specification.ByVisitorID{VisitorID: visitorID},
	)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		existing = &entity.Lead{
			Id:             uuid.New(),
			AccountId:      accountID,
			VisitorId:      visitorID,
			ConversationId: conversationID,
			CreatedAt:      time.Now(),
		}
		existing.Absorb(info)
		err = repo.Create(ctx, existing)
	} else {
		existing.Absorb(info)
		if conversationID != "" {
			existing.ConversationId = conversationID
		}
		err = repo.Update(ctx, existing)
	}
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return existing, nil
}

// HasFeature requires the catalog entry to be active and granted to the account
func (s *PostgresStore) HasFeature(ctx context.Context, accountID uuid.UUID, feature string) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	catalog, err := uow.FeatureRepository().FindByKey(ctx, feature)
	if err != nil {
		return false, err
	}
	if catalog == nil || !catalog.IsActive {
		return false, nil
	}

	grant, err := uow.AccountFeatureRepository().FindOne(ctx,
		specification.ByAccountID{AccountID: accountID},
		specification.ByFeatureKey{Key: feature},
	)
	if err != nil {
		return false, err
	}
	return grant != nil && grant.Enabled, nil
}
