package contract

import (
	"context"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/repository/specification"
)

type SemanticEntryRepository interface {
	Upsert(ctx context.Context, entry *entity.SemanticEntry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SemanticEntry, error)
}
