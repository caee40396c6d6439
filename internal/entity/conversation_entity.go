package entity

import (
	"time"

	"realestate-chatbot-be/pkg/lead"

	"github.com/google/uuid"
)

// ConversationTurn is one answered exchange, stored in arrival order
type ConversationTurn struct {
	Id             uuid.UUID
	AccountId      uuid.UUID
	ConversationId string
	VisitorId      string
	UserMessage    string
	BotResponse    string
	Source         string
	LeadInfo       lead.VisitorInfo
	CreatedAt      time.Time
}

// Lead is the merged contact record of one visitor of one account
type Lead struct {
	Id               uuid.UUID
	AccountId        uuid.UUID
	VisitorId        string
	ConversationId   string
	Name             string
	Email            string
	Phone            string
	Budget           string
	PropertyInterest string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

func (l *Lead) VisitorInfo() lead.VisitorInfo {
	return lead.VisitorInfo{
		Name:             l.Name,
		Email:            l.Email,
		Phone:            l.Phone,
		Budget:           l.Budget,
		PropertyInterest: l.PropertyInterest,
		VisitorID:        l.VisitorId,
	}
}

// Absorb merges info into the lead; empty values never overwrite
func (l *Lead) Absorb(info lead.VisitorInfo) {
	merged := lead.Merge(l.VisitorInfo(), info)
	l.Name = merged.Name
	l.Email = merged.Email
	l.Phone = merged.Phone
	l.Budget = merged.Budget
	l.PropertyInterest = merged.PropertyInterest
	l.VisitorId = merged.VisitorID
}
