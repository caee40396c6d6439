package mapper

import (
	"time"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/model"
	"realestate-chatbot-be/pkg/training"

	"gorm.io/datatypes"
)

type TrainingMapper struct{}

func NewTrainingMapper() *TrainingMapper {
	return &TrainingMapper{}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func valueTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// Q&A

func (m *TrainingMapper) QAToEntity(q *model.TrainingQA) *entity.TrainingQA {
	if q == nil {
		return nil
	}
	return &entity.TrainingQA{
		Id:        q.Id,
		AccountId: q.AccountId,
		Question:  q.Question,
		Answer:    q.Answer,
		Category:  q.Category,
		Priority:  q.Priority,
		CreatedAt: q.CreatedAt,
		UpdatedAt: optionalTime(q.UpdatedAt),
	}
}

func (m *TrainingMapper) QAToModel(q *entity.TrainingQA) *model.TrainingQA {
	if q == nil {
		return nil
	}
	return &model.TrainingQA{
		Id:        q.Id,
		AccountId: q.AccountId,
		Question:  q.Question,
		Answer:    q.Answer,
		Category:  q.Category,
		Priority:  q.Priority,
		CreatedAt: q.CreatedAt,
		UpdatedAt: valueTime(q.UpdatedAt),
	}
}

func (m *TrainingMapper) QAToDomain(q *entity.TrainingQA) training.QAPair {
	return training.QAPair{
		ID:       q.Id,
		Question: q.Question,
		Answer:   q.Answer,
		Category: q.Category,
		Priority: q.Priority,
	}
}

// File content

func (m *TrainingMapper) FileToEntity(f *model.FileContent) *entity.FileContent {
	if f == nil {
		return nil
	}
	return &entity.FileContent{
		Id:          f.Id,
		AccountId:   f.AccountId,
		Content:     f.Content,
		SourceLabel: f.SourceLabel,
		Category:    f.Category,
		Priority:    f.Priority,
		CreatedAt:   f.CreatedAt,
	}
}

func (m *TrainingMapper) FileToModel(f *entity.FileContent) *model.FileContent {
	if f == nil {
		return nil
	}
	return &model.FileContent{
		Id:          f.Id,
		AccountId:   f.AccountId,
		Content:     f.Content,
		SourceLabel: f.SourceLabel,
		Category:    f.Category,
		Priority:    f.Priority,
		CreatedAt:   f.CreatedAt,
	}
}

func (m *TrainingMapper) FileToDomain(f *entity.FileContent) training.FileContent {
	return training.FileContent{
		ID:          f.Id,
		Text:        f.Content,
		SourceLabel: f.SourceLabel,
		Category:    f.Category,
		Priority:    f.Priority,
	}
}

// Properties

func (m *TrainingMapper) PropertyToEntity(p *model.Property) *entity.Property {
	if p == nil {
		return nil
	}
	return &entity.Property{
		Id:          p.Id,
		AccountId:   p.AccountId,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Location:    p.Location,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		HasPool:     p.HasPool,
		Features:    []string(p.Features),
		URL:         p.URL,
		Priority:    p.Priority,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   optionalTime(p.UpdatedAt),
	}
}

func (m *TrainingMapper) PropertyToModel(p *entity.Property) *model.Property {
	if p == nil {
		return nil
	}
	return &model.Property{
		Id:          p.Id,
		AccountId:   p.AccountId,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Location:    p.Location,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		HasPool:     p.HasPool,
		Features:    datatypes.JSONSlice[string](p.Features),
		URL:         p.URL,
		Priority:    p.Priority,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   valueTime(p.UpdatedAt),
	}
}

func (m *TrainingMapper) PropertyToDomain(p *entity.Property) training.Property {
	return training.Property{
		ID:          p.Id,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Location:    p.Location,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		HasPool:     p.HasPool,
		Features:    p.Features,
		URL:         p.URL,
		Priority:    p.Priority,
	}
}
