package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

// AuthService implements registration, login and token refresh.
type AuthService struct {
	repo       ports.UserRepository
	tokens     *TokenService
	bcryptCost int
	logger     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, bcryptCost int, logger zerolog.Logger) *AuthService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

// Register creates an active account with the default user role and
// returns the stored user together with a freshly issued token.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	if input.Email == "" || input.Password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:     input.FullName,
		PasswordHash: string(hash),
		IsActive:     true,
		Roles:        []domain.Role{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("email", created.Email).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials and issues a bearer token. A missing user
// and a wrong password produce the same error so responses cannot be
// used to enumerate accounts. Inactive users and users with no roles are
// rejected even with correct credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, domain.ErrInactiveUser
	}
	if len(user.Roles) == 0 {
		return "", nil, domain.ErrNoRolesAssigned
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", user.Email).Msg("user logged in")
	return token, user, nil
}

// CheckStatus re-issues a token for a user that already passed the auth
// middleware.
func (s *AuthService) CheckStatus(_ context.Context, user *domain.User) (string, error) {
	return s.tokens.Issue(user)
}
