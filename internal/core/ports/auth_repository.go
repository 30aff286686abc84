package ports

import (
	"context"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

// UserRepository defines the persistence operations the auth core needs.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks a user up by normalized (lower-cased) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// DeleteAll removes every user. Seed/test utility only.
	DeleteAll(ctx context.Context) error
}
