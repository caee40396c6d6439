package mapper

import (
	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/model"
)

type FeatureMapper struct{}

func NewFeatureMapper() *FeatureMapper {
	return &FeatureMapper{}
}

func (m *FeatureMapper) ToEntity(model *model.Feature) *entity.Feature {
	if model == nil {
		return nil
	}
	return &entity.Feature{
		Id:          model.Id,
		Key:         model.Key,
		Name:        model.Name,
		Description: model.Description,
		IsActive:    model.IsActive,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func (m *FeatureMapper) ToModel(entity *entity.Feature) *model.Feature {
	if entity == nil {
		return nil
	}
	return &model.Feature{
		Id:          entity.Id,
		Key:         entity.Key,
		Name:        entity.Name,
		Description: entity.Description,
		IsActive:    entity.IsActive,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func (m *FeatureMapper) AccountFeatureToEntity(model *model.AccountFeature) *entity.AccountFeature {
	if model == nil {
		return nil
	}
	return &entity.AccountFeature{
		Id:         model.Id,
		AccountId:  model.AccountId,
		FeatureKey: model.FeatureKey,
		Enabled:    model.Enabled,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func (m *FeatureMapper) AccountFeatureToModel(entity *entity.AccountFeature) *model.AccountFeature {
	if entity == nil {
		return nil
	}
	return &model.AccountFeature{
		Id:         entity.Id,
		AccountId:  entity.AccountId,
		FeatureKey: entity.FeatureKey,
		Enabled:    entity.Enabled,
		CreatedAt:  entity.CreatedAt,
		UpdatedAt:  entity.UpdatedAt,
	}
}
