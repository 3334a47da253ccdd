package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/mapper"
	"empower-commerce-be/internal/model"
	"empower-commerce-be/internal/repository/contract"
	"empower-commerce-be/internal/repository/specification"
)

type SemanticEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SemanticEntryMapper
}

func NewSemanticEntryRepository(db *gorm.DB) contract.SemanticEntryRepository {
	return &SemanticEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewSemanticEntryMapper(),
	}
}

func (r *SemanticEntryRepositoryImpl) Upsert(ctx context.Context, entry *entity.SemanticEntry) error {
	m := r.mapper.ToModel(entry)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *SemanticEntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SemanticEntry, error) {
	var m model.SemanticEntry
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
