package events

import (
	"time"

	"realestate-chatbot-be/pkg/lead"
)

// LeadCaptured is published when a turn of an authenticated account carries
// lead signal.
type LeadCaptured struct {
	AccountID      string           `json:"accountId"`
	VisitorID      string           `json:"visitorId"`
	ConversationID string           `json:"conversationId"`
	Lead           lead.VisitorInfo `json:"lead"`
	CapturedAt     time.Time        `json:"capturedAt"`
}

func (e LeadCaptured) EventType() string {
	return LeadCapturedType
}

func (e LeadCaptured) Payload() map[string]interface{} {
	return map[string]interface{}{
		"accountId":      e.AccountID,
		"visitorId":      e.VisitorID,
		"conversationId": e.ConversationID,
		"lead":           e.Lead,
		"capturedAt":     e.CapturedAt.Format(time.RFC3339),
	}
}

func (e LeadCaptured) Timestamp() time.Time {
	return e.CapturedAt
}

// LeadCapturedFromPayload rebuilds the event from a bus payload. Unknown or
// missing keys are left empty.
func LeadCapturedFromPayload(p map[string]interface{}) LeadCaptured {
	str := func(k string) string {
		s, _ := p[k].(string)
		return s
	}
	e := LeadCaptured{
		AccountID:      str("accountId"),
		VisitorID:      str("visitorId"),
		ConversationID: str("conversationId"),
	}
	if t, err := time.Parse(time.RFC3339, str("capturedAt")); err == nil {
		e.CapturedAt = t
	}
	if raw, ok := p["lead"].(map[string]interface{}); ok {
		get := func(k string) string {
			s, _ := raw[k].(string)
			return s
		}
		e.Lead = lead.VisitorInfo{
			Name:             get("name"),
			Email:            get("email"),
			Phone:            get("phone"),
			Budget:           get("budget"),
			PropertyInterest: get("propertyInterest"),
			VisitorID:        get("visitorId"),
		}
	}
	return e
}
