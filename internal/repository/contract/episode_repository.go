package contract

import (
	"context"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/repository/specification"
)

type EpisodeRepository interface {
	Create(ctx context.Context, episode *entity.Episode) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Episode, error)
}
