package contract

import (
	"context"

	"empower-commerce-be/internal/entity"
)

type UserRepository interface {
	// Ensure creates the user row if it does not exist yet.
	Ensure(ctx context.Context, id string) (*entity.User, error)
}
