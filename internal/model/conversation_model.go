package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConversationTurn rows are append-only
type ConversationTurn struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountId      uuid.UUID      `gorm:"type:uuid;not null;index:idx_turn_conversation"`
	ConversationId string         `gorm:"type:varchar(64);not null;index:idx_turn_conversation"`
	VisitorId      string         `gorm:"type:varchar(64)"`
	UserMessage    string         `gorm:"type:text;not null"`
	BotResponse    string         `gorm:"type:text;not null"`
	Source         string         `gorm:"type:varchar(20);not null"`
	LeadInfo       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}

type Lead struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountId        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lead_visitor"`
	VisitorId        string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_lead_visitor"`
	ConversationId   string    `gorm:"type:varchar(64)"`
	Name             string    `gorm:"type:varchar(255)"`
	Email            string    `gorm:"type:varchar(255)"`
	Phone            string    `gorm:"type:varchar(50)"`
	Budget           string    `gorm:"type:varchar(100)"`
	PropertyInterest string    `gorm:"type:varchar(50)"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Lead) TableName() string {
	return "leads"
}
