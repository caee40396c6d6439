package contract

import (
	"context"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/repository/specification"
)

type TrainingQARepository interface {
	Create(ctx context.Context, qa *entity.TrainingQA) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TrainingQA, error)
}

type FileContentRepository interface {
	Create(ctx context.Context, file *entity.FileContent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileContent, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error)
}
