package contract

import (
	"context"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/repository/specification"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *entity.Goal) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Goal, error)
}
