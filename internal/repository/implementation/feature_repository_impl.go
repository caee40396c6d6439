package implementation

import (
	"context"
	"errors"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/mapper"
	"realestate-chatbot-be/internal/model"
	"realestate-chatbot-be/internal/repository/contract"
	"realestate-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeatureMapper
}

func NewFeatureRepository(db *gorm.DB) contract.FeatureRepository {
	return &FeatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeatureMapper(),
	}
}

func (r *FeatureRepositoryImpl) Create(ctx context.Context, feature *entity.Feature) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeatureRepositoryImpl) FindByKey(ctx context.Context, key string) (*entity.Feature, error) {
	var m model.Feature
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

type AccountFeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeatureMapper
}

func NewAccountFeatureRepository(db *gorm.DB) contract.AccountFeatureRepository {
	return &AccountFeatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeatureMapper(),
	}
}

func (r *AccountFeatureRepositoryImpl) Create(ctx context.Context, grant *entity.AccountFeature) error {
	m := r.mapper.AccountFeatureToModel(grant)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*grant = *r.mapper.AccountFeatureToEntity(m)
	return nil
}

func (r *AccountFeatureRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AccountFeature, error) {
	var m model.AccountFeature
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AccountFeatureToEntity(&m), nil
}
