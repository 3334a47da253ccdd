package unitofwork

import (
	"context"

	"empower-commerce-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	TurnRepository() contract.TurnRepository
	GoalRepository() contract.GoalRepository
	RecommendationRepository() contract.RecommendationRepository
	EpisodeRepository() contract.EpisodeRepository
	SemanticEntryRepository() contract.SemanticEntryRepository
}
