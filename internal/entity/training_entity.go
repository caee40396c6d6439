package entity

import (
	"time"

	"github.com/google/uuid"
)

type TrainingQA struct {
	Id        uuid.UUID
	AccountId uuid.UUID
	Question  string
	Answer    string
	Category  string
	Priority  int
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// FileContent is text from an uploaded document or crawled page
type FileContent struct {
	Id          uuid.UUID
	AccountId   uuid.UUID
	Content     string
	SourceLabel string
	Category    string
	Priority    int
	CreatedAt   time.Time
}

type Property struct {
	Id          uuid.UUID
	AccountId   uuid.UUID
	Title       string
	Description string
	Price       float64
	Location    string
	Bedrooms    *int
	Bathrooms   *int
	HasPool     bool
	Features    []string
	URL         string
	Priority    int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
