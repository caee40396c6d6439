package dto

import (
	"time"

	"realestate-chatbot-be/pkg/chat"
	"realestate-chatbot-be/pkg/lead"
)

type RespondRequest struct {
	Message          string           `json:"message" validate:"required,max=4000"`
	AccountID        string           `json:"accountId"`
	VisitorInfo      lead.VisitorInfo `json:"visitorInfo"`
	ConversationID   string           `json:"conversationId,omitempty" validate:"max=64"`
	PreviousMessages []chat.Message   `json:"previousMessages" validate:"max=200"`
}

type RespondResponse struct {
	Response                string                        `json:"response"`
	Source                  chat.Source                   `json:"source"`
	ConversationID          string                        `json:"conversationId"`
	LeadInfo                *lead.VisitorInfo             `json:"leadInfo,omitempty"`
	PropertyRecommendations []chat.PropertyRecommendation `json:"propertyRecommendations,omitempty"`
}

type ConversationTurnResponse struct {
	UserMessage string           `json:"user_message"`
	BotResponse string           `json:"bot_response"`
	Source      string           `json:"source"`
	VisitorID   string           `json:"visitor_id,omitempty"`
	LeadInfo    lead.VisitorInfo `json:"lead_info"`
	CreatedAt   time.Time        `json:"created_at"`
}

// LeadCapturedMessage is the in-process bus payload for a captured lead
type LeadCapturedMessage struct {
	AccountID      string           `json:"account_id"`
	VisitorID      string           `json:"visitor_id"`
	ConversationID string           `json:"conversation_id"`
	Lead           lead.VisitorInfo `json:"lead"`
	CapturedAt     time.Time        `json:"captured_at"`
}
