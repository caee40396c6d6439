package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByAccountID scopes a query to one tenant's rows
type ByAccountID struct {
	AccountID uuid.UUID
}

func (s ByAccountID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("account_id = ?", s.AccountID)
}

type ByConversationID struct {
	ConversationID string
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

type ByVisitorID struct {
	VisitorID string
}

func (s ByVisitorID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("visitor_id = ?", s.VisitorID)
}

type ByFeatureKey struct {
	Key string
}

func (s ByFeatureKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feature_key = ?", s.Key)
}

// ArrivalOrder sorts turns oldest first; id breaks timestamp ties
type ArrivalOrder struct{}

func (ArrivalOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
