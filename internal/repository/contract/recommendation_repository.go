package contract

import (
	"context"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/repository/specification"
)

type RecommendationRepository interface {
	Create(ctx context.Context, recommendation *entity.Recommendation) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Recommendation, error)
}
