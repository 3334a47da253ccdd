package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/mapper"
	"empower-commerce-be/internal/model"
	"empower-commerce-be/internal/repository/contract"
	"empower-commerce-be/internal/repository/specification"
)

type EpisodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EpisodeMapper
}

func NewEpisodeRepository(db *gorm.DB) contract.EpisodeRepository {
	return &EpisodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewEpisodeMapper(),
	}
}

func (r *EpisodeRepositoryImpl) Create(ctx context.Context, episode *entity.Episode) error {
	m := r.mapper.ToModel(episode)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*episode = *r.mapper.ToEntity(m)
	return nil
}

func (r *EpisodeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Episode, error) {
	var m model.Episode
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
