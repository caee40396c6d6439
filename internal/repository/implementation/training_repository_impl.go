package implementation

import (
	"context"

	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/mapper"
	"realestate-chatbot-be/internal/model"
	"realestate-chatbot-be/internal/repository/contract"
	"realestate-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TrainingQARepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TrainingMapper
}

func NewTrainingQARepository(db *gorm.DB) contract.TrainingQARepository {
	return &TrainingQARepositoryImpl{db: db, mapper: mapper.NewTrainingMapper()}
}

func (r *TrainingQARepositoryImpl) Create(ctx context.Context, qa *entity.TrainingQA) error {
	m := r.mapper.QAToModel(qa)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*qa = *r.mapper.QAToEntity(m)
	return nil
}

func (r *TrainingQARepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TrainingQA, error) {
	var models []*model.TrainingQA
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TrainingQA, len(models))
	for i, m := range models {
		entities[i] = r.mapper.QAToEntity(m)
	}
	return entities, nil
}

type FileContentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TrainingMapper
}

func NewFileContentRepository(db *gorm.DB) contract.FileContentRepository {
	return &FileContentRepositoryImpl{db: db, mapper: mapper.NewTrainingMapper()}
}

func (r *FileContentRepositoryImpl) Create(ctx context.Context, file *entity.FileContent) error {
	m := r.mapper.FileToModel(file)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.FileToEntity(m)
	return nil
}

func (r *FileContentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileContent, error) {
	var models []*model.FileContent
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.FileContent, len(models))
	for i, m := range models {
		entities[i] = r.mapper.FileToEntity(m)
	}
	return entities, nil
}

type PropertyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TrainingMapper
}

func NewPropertyRepository(db *gorm.DB) contract.PropertyRepository {
	return &PropertyRepositoryImpl{db: db, mapper: mapper.NewTrainingMapper()}
}

func (r *PropertyRepositoryImpl) Create(ctx context.Context, property *entity.Property) error {
	m := r.mapper.PropertyToModel(property)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*property = *r.mapper.PropertyToEntity(m)
	return nil
}

func (r *PropertyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error) {
	var models []*model.Property
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Property, len(models))
	for i, m := range models {
		entities[i] = r.mapper.PropertyToEntity(m)
	}
	return entities, nil
}
