package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TrainingQA struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Question  string         `gorm:"type:text;not null"`
	Answer    string         `gorm:"type:text;not null"`
	Category  string         `gorm:"type:varchar(100)"`
	Priority  int            `gorm:"default:0"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (TrainingQA) TableName() string {
	return "training_qa"
}

type FileContent struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content     string         `gorm:"type:text;not null"`
	SourceLabel string         `gorm:"type:varchar(255)"` // file name or crawled url
	Category    string         `gorm:"type:varchar(100)"`
	Priority    int            `gorm:"default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (FileContent) TableName() string {
	return "file_contents"
}

type Property struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountId   uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Title       string                      `gorm:"type:varchar(255);not null"`
	Description string                      `gorm:"type:text"`
	Price       float64                     `gorm:"type:numeric(14,2)"`
	Location    string                      `gorm:"type:varchar(255)"`
	Bedrooms    *int                        `gorm:"type:int"`
	Bathrooms   *int                        `gorm:"type:int"`
	HasPool     bool                        `gorm:"default:false"`
	Features    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	URL         string                      `gorm:"type:text"`
	Priority    int                         `gorm:"default:0"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt              `gorm:"index"`
}

func (Property) TableName() string {
	return "properties"
}
