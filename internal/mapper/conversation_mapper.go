package mapper

import (
	"encoding/json"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/model"
	"realestate-chatbot-be/pkg/lead"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) TurnToEntity(t *model.ConversationTurn) *entity.ConversationTurn {
	if t == nil {
		return nil
	}
	var info lead.VisitorInfo
	if len(t.LeadInfo) > 0 {
		// unreadable lead info leaves the turn itself intact
		_ = json.Unmarshal(t.LeadInfo, &info)
	}
	return &entity.ConversationTurn{
		Id:             t.Id,
		AccountId:      t.AccountId,
		ConversationId: t.ConversationId,
		VisitorId:      t.VisitorId,
		UserMessage:    t.UserMessage,
		BotResponse:    t.BotResponse,
		Source:         t.Source,
		LeadInfo:       info,
		CreatedAt:      t.CreatedAt,
	}
}

func (m *ConversationMapper) TurnToModel(t *entity.ConversationTurn) (*model.ConversationTurn, error) {
	if t == nil {
		return nil, nil
	}
	raw, err := json.Marshal(t.LeadInfo)
	if err != nil {
		return nil, err
	}
	return &model.ConversationTurn{
		Id:             t.Id,
		AccountId:      t.AccountId,
		ConversationId: t.ConversationId,
		VisitorId:      t.VisitorId,
		UserMessage:    t.UserMessage,
		BotResponse:    t.BotResponse,
		Source:         t.Source,
		LeadInfo:       datatypes.JSON(raw),
		CreatedAt:      t.CreatedAt,
	}, nil
}

func (m *ConversationMapper) LeadToEntity(l *model.Lead) *entity.Lead {
	if l == nil {
		return nil
	}
	return &entity.Lead{
		Id:               l.Id,
		AccountId:        l.AccountId,
		VisitorId:        l.VisitorId,
		ConversationId:   l.ConversationId,
		Name:             l.Name,
		Email:            l.Email,
		Phone:            l.Phone,
		Budget:           l.Budget,
		PropertyInterest: l.PropertyInterest,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        optionalTime(l.UpdatedAt),
	}
}

func (m *ConversationMapper) LeadToModel(l *entity.Lead) *model.Lead {
	if l == nil {
		return nil
	}
	return &model.Lead{
		Id:               l.Id,
		AccountId:        l.AccountId,
		VisitorId:        l.VisitorId,
		ConversationId:   l.ConversationId,
		Name:             l.Name,
		Email:            l.Email,
		Phone:            l.Phone,
		Budget:           l.Budget,
		PropertyInterest: l.PropertyInterest,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        valueTime(l.UpdatedAt),
	}
}
