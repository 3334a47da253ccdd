package implementation

import (
	"context"

	"gorm.io/gorm"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/mapper"
	"empower-commerce-be/internal/model"
	"empower-commerce-be/internal/repository/contract"
	"empower-commerce-be/internal/repository/specification"
)

type RecommendationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecommendationMapper
}

func NewRecommendationRepository(db *gorm.DB) contract.RecommendationRepository {
	return &RecommendationRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecommendationMapper(),
	}
}

func (r *RecommendationRepositoryImpl) Create(ctx context.Context, recommendation *entity.Recommendation) error {
	m := r.mapper.ToModel(recommendation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*recommendation = *r.mapper.ToEntity(m)
	return nil
}

func (r *RecommendationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Recommendation, error) {
	var models []*model.Recommendation
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Recommendation, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
