package session

import (
	"context"

	"empower-commerce-be/internal/entity"
	"empower-commerce-be/internal/repository/specification"
	"empower-commerce-be/internal/repository/unitofwork"
)

// SemanticLedger is the user's long-lived memory of list-valued keys. The
// goals key is the deduplicated cross-session goal ledger.
type SemanticLedger struct {
	factory unitofwork.RepositoryFactory
	userID  string
}

func NewSemanticLedger(factory unitofwork.RepositoryFactory, userID string) *SemanticLedger {
	return &SemanticLedger{factory: factory, userID: userID}
}

func (l *SemanticLedger) Get(ctx context.Context, key string) ([]string, error) {
	uow := l.factory.NewUnitOfWork(ctx)
	entry, err := uow.SemanticEntryRepository().FindOne(ctx,
		specification.ByUserID{UserID: l.userID},
		specification.ByKey{Key: key},
	)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return []string{}, nil
	}
	return entry.Value, nil
}

func (l *SemanticLedger) Set(ctx context.Context, key string, values []string) error {
	uow := l.factory.NewUnitOfWork(ctx)
	return uow.SemanticEntryRepository().Upsert(ctx, &entity.SemanticEntry{
		UserId: l.userID,
		Key:    key,
		Value:  values,
	})
}

// Append adds a value to a key's list. Callers dedup before appending when
// the key is a deduplicated ledger.
func (l *SemanticLedger) Append(ctx context.Context, key, value string) error {
	values, err := l.Get(ctx, key)
	if err != nil {
		return err
	}
	return l.Set(ctx, key, append(values, value))
}
