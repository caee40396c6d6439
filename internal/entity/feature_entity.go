package entity

import (
	"time"

	"github.com/google/uuid"
)

// Feature is a capability in the plan catalog
type Feature struct {
	Id          uuid.UUID
	Key         string // chatbot, lead_export, ...
	Name        string
	Description string
	IsActive    bool // global kill switch
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AccountFeature grants a catalog feature to one account's plan
type AccountFeature struct {
	Id         uuid.UUID
	AccountId  uuid.UUID
	FeatureKey string
	Enabled    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
