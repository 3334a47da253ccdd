package implementation

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/mapper"
	"empower-commerce-be/internal/model"
	"empower-commerce-be/internal/repository/contract"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Ensure(ctx context.Context, id string) (*entity.User, error) {
	m := &model.User{Id: id}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}
