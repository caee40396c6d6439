package service

import (
	"context"
	"errors"
	"time"

	"realestate-chatbot-be/internal/dto"
	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/internal/pkg/metrics"
	"realestate-chatbot-be/internal/repository/contract"
	"realestate-chatbot-be/pkg/identity"
	"realestate-chatbot-be/pkg/lead"
	"realestate-chatbot-be/pkg/rag/access"
	"realestate-chatbot-be/pkg/rag/response"

	"github.com/google/uuid"
)

var ErrConversationNotFound = errors.New("conversation not found")

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	Respond(ctx context.Context, request *dto.RespondRequest) (*dto.RespondResponse, error)
	GetConversation(ctx context.Context, accountId uuid.UUID, conversationId string) ([]*dto.ConversationTurnResponse, error)
}

type chatbotService struct {
	store     contract.ChatbotStore
	generator *response.Generator
	verifier  *access.Verifier
	publisher IPublisherService
	metrics   *metrics.Chatbot
	logger    logger.ILogger
}

func NewChatbotService(
	store contract.ChatbotStore,
	generator *response.Generator,
	verifier *access.Verifier,
	publisher IPublisherService,
	metrics *metrics.Chatbot,
	logger logger.ILogger,
) IChatbotService {
	return &chatbotService{
		store:     store,
		generator: generator,
		verifier:  verifier,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Respond answers one visitor turn. The only errors are access refusals;
// generation problems come back as a soft "error" source.
func (cs *chatbotService) Respond(ctx context.Context, request *dto.RespondRequest) (*dto.RespondResponse, error) {
	account := identity.Parse(request.AccountID)

	if err := cs.verifier.Verify(ctx, account, access.FeatureChatbot); err != nil {
		cs.metrics.Rejected("feature_disabled")
		return nil, err
	}

	start := time.Now()
	res := cs.generator.Respond(ctx, response.Request{
		Message:        request.Message,
		Account:        account,
		VisitorInfo:    request.VisitorInfo,
		ConversationID: request.ConversationID,
		PriorTurns:     request.PreviousMessages,
	})

	kind := "demo"
	if account.IsAuthenticated() {
		kind = "account"
	}
	cs.metrics.ObserveResponse(string(res.Source), kind, time.Since(start))

	out := &dto.RespondResponse{
		Response:                res.Response,
		Source:                  res.Source,
		ConversationID:          res.ConversationID,
		PropertyRecommendations: res.PropertyRecommendations,
	}
	if !res.LeadInfo.IsEmpty() {
		info := res.LeadInfo
		out.LeadInfo = &info
		cs.captureLead(ctx, account, request.VisitorInfo, res)
	}
	return out, nil
}

// captureLead hands new lead signal of an authenticated account to the lead
// pipeline. The demo never captures leads.
func (cs *chatbotService) captureLead(ctx context.Context, account identity.Account, known lead.VisitorInfo, res response.Result) {
	accountID, ok := account.ID()
	if !ok {
		return
	}
	cs.metrics.LeadCaptured()

	visitorID := known.VisitorID
	if visitorID == "" {
		visitorID = res.ConversationID
	}

	err := cs.publisher.PublishLeadCaptured(ctx, dto.LeadCapturedMessage{
		AccountID:      accountID.String(),
		VisitorID:      visitorID,
		ConversationID: res.ConversationID,
		Lead:           lead.Merge(known, res.LeadInfo),
		CapturedAt:     time.Now(),
	})
	if err != nil {
		cs.logger.Error("CHATBOT", "Failed to publish captured lead", map[string]interface{}{
			"account_id":      accountID.String(),
			"conversation_id": res.ConversationID,
			"error":           err.Error(),
		})
	}
}

func (cs *chatbotService) GetConversation(ctx context.Context, accountId uuid.UUID, conversationId string) ([]*dto.ConversationTurnResponse, error) {
	turns, err := cs.store.ListTurns(ctx, accountId, conversationId)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, ErrConversationNotFound
	}

	out := make([]*dto.ConversationTurnResponse, len(turns))
	for i, t := range turns {
		out[i] = &dto.ConversationTurnResponse{
			UserMessage: t.UserMessage,
			BotResponse: t.BotResponse,
			Source:      t.Source,
			VisitorID:   t.VisitorId,
			LeadInfo:    t.LeadInfo,
			CreatedAt:   t.CreatedAt,
		}
	}
	return out, nil
}

// ConversationLog adapts a ChatbotStore to the generator's turn log
type ConversationLog struct {
	store contract.ChatbotStore
}

func NewConversationLog(store contract.ChatbotStore) *ConversationLog {
	return &ConversationLog{store: store}
}

func (l *ConversationLog) AppendTurn(ctx context.Context, turn response.Turn) error {
	return l.store.AppendTurn(ctx, &entity.ConversationTurn{
		AccountId:      turn.AccountID,
		ConversationId: turn.ConversationID,
		VisitorId:      turn.VisitorID,
		UserMessage:    turn.UserMessage,
		BotResponse:    turn.BotResponse,
		Source:         string(turn.Source),
		LeadInfo:       turn.LeadInfo,
		CreatedAt:      turn.CreatedAt,
	})
}
