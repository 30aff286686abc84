package ports

import (
	"context"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// AuthService is the application-facing surface of the auth core.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	// Login returns a signed bearer token for a valid (email, password)
	// pair belonging to an active user with at least one role.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CheckStatus re-issues a token for an already-authenticated user.
	CheckStatus(ctx context.Context, user *domain.User) (string, error)
}

// TokenVerifier resolves a bearer token string back to an identity claim.
type TokenVerifier interface {
	Verify(token string) (TokenClaims, error)
}

// TokenClaims is the identity payload carried by a bearer token.
type TokenClaims struct {
	UserID string
	Email  string
}
