package supabase

import (
	"time"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/pkg/lead"
	"realestate-chatbot-be/pkg/training"

	"github.com/google/uuid"
)

type qaRow struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Category string    `json:"category"`
	Priority int       `json:"priority"`
}

func (r qaRow) toDomain() training.QAPair {
	return training.QAPair{ID: r.ID, Question: r.Question, Answer: r.Answer, Category: r.Category, Priority: r.Priority}
}

type fileRow struct {
	ID          uuid.UUID `json:"id"`
	Content     string    `json:"content"`
	SourceLabel string    `json:"source_label"`
	Category    string    `json:"category"`
	Priority    int       `json:"priority"`
}

func (r fileRow) toDomain() training.FileContent {
	return training.FileContent{ID: r.ID, Text: r.Content, SourceLabel: r.SourceLabel, Category: r.Category, Priority: r.Priority}
}

type propertyRow struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Bedrooms    *int      `json:"bedrooms"`
	Bathrooms   *int      `json:"bathrooms"`
	HasPool     bool      `json:"has_pool"`
	Features    []string  `json:"features"`
	URL         string    `json:"url"`
	Priority    int       `json:"priority"`
}

func (r propertyRow) toDomain() training.Property {
	return training.Property{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Location:    r.Location,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		HasPool:     r.HasPool,
		Features:    r.Features,
		URL:         r.URL,
		Priority:    r.Priority,
	}
}

type turnRow struct {
	ID             uuid.UUID        `json:"id"`
	AccountID      uuid.UUID        `json:"account_id"`
	ConversationID string           `json:"conversation_id"`
	VisitorID      string           `json:"visitor_id"`
	UserMessage    string           `json:"user_message"`
	BotResponse    string           `json:"bot_response"`
	Source         string           `json:"source"`
	LeadInfo       lead.VisitorInfo `json:"lead_info"`
	CreatedAt      time.Time        `json:"created_at"`
}

func turnRowFrom(t *entity.ConversationTurn) turnRow {
	return turnRow{
		ID:             t.Id,
		AccountID:      t.AccountId,
		ConversationID: t.ConversationId,
		VisitorID:      t.VisitorId,
		UserMessage:    t.UserMessage,
		BotResponse:    t.BotResponse,
		Source:         t.Source,
		LeadInfo:       t.LeadInfo,
		CreatedAt:      t.CreatedAt,
	}
}

func (r turnRow) toEntity() *entity.ConversationTurn {
	return &entity.ConversationTurn{
		Id:             r.ID,
		AccountId:      r.AccountID,
		ConversationId: r.ConversationID,
		VisitorId:      r.VisitorID,
		UserMessage:    r.UserMessage,
		BotResponse:    r.BotResponse,
		Source:         r.Source,
		LeadInfo:       r.LeadInfo,
		CreatedAt:      r.CreatedAt,
	}
}

type leadRow struct {
	ID               uuid.UUID  `json:"id"`
	AccountID        uuid.UUID  `json:"account_id"`
	VisitorID        string     `json:"visitor_id"`
	ConversationID   string     `json:"conversation_id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Budget           string     `json:"budget"`
	PropertyInterest string     `json:"property_interest"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

func leadRowFrom(l *entity.Lead) leadRow {
	return leadRow{
		ID:               l.Id,
		AccountID:        l.AccountId,
		VisitorID:        l.VisitorId,
		ConversationID:   l.ConversationId,
		Name:             l.Name,
		Email:            l.Email,
		Phone:            l.Phone,
		Budget:           l.Budget,
		PropertyInterest: l.PropertyInterest,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

func (r leadRow) toEntity() *entity.Lead {
	return &entity.Lead{
		Id:               r.ID,
		AccountId:        r.AccountID,
		VisitorId:        r.VisitorID,
		ConversationId:   r.ConversationID,
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		Budget:           r.Budget,
		PropertyInterest: r.PropertyInterest,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type featureRow struct {
	Key      string `json:"key"`
	IsActive bool   `json:"is_active"`
}

type accountFeatureRow struct {
	Enabled bool `json:"enabled"`
}
