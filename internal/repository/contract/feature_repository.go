package contract

import (
	"context"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/repository/specification"
)

type FeatureRepository interface {
	Create(ctx context.Context, feature *entity.Feature) error
	FindByKey(ctx context.Context, key string) (*entity.Feature, error)
}

type AccountFeatureRepository interface {
	Create(ctx context.Context, grant *entity.AccountFeature) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AccountFeature, error)
}
