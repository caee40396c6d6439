package chatclient

import (
	"realestate-chatbot-be/pkg/chat"
	"realestate-chatbot-be/pkg/lead"
)

// Request is the body of POST /api/chatbot/v1/respond
type Request struct {
	Message          string           `json:"message"`
	AccountID        string           `json:"accountId"`
	VisitorInfo      lead.VisitorInfo `json:"visitorInfo"`
	ConversationID   string           `json:"conversationId,omitempty"`
	PreviousMessages []chat.Message   `json:"previousMessages"`
}

// Response is a resolved turn. Source "error" is a soft failure that still
// carries a displayable reply.
type Response struct {
	Response                string                        `json:"response"`
	Source                  chat.Source                   `json:"source"`
	ConversationID          string                        `json:"conversationId"`
	LeadInfo                *lead.VisitorInfo             `json:"leadInfo,omitempty"`
	PropertyRecommendations []chat.PropertyRecommendation `json:"propertyRecommendations,omitempty"`
}

// ErrorEnvelope is returned by the server on hard failures
type ErrorEnvelope struct {
	Error string `json:"error"`
}
