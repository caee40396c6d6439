package model

import (
	"time"

	"github.com/google/uuid"
)

// Feature represents a capability in the plan catalog
type Feature struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Feature) TableName() string {
	return "features"
}

type AccountFeature struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_account_feature"`
	FeatureKey string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_account_feature"`
	Enabled    bool      `gorm:"default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (AccountFeature) TableName() string {
	return "account_features"
}
