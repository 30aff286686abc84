package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) DeleteAll(_ context.Context) error {
	r.users = make(map[string]*domain.User)
	return nil
}

func registerInput(email, password, fullName string) ports.RegisterInput {
	return ports.RegisterInput{Email: email, Password: password, FullName: fullName}
}

func newAuthService(repo *stubUserRepo) *AuthService {
	tokens, _ := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, tokens, bcrypt.MinCost, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, token, err := svc.Register(context.Background(), registerInput("a@x.com", "Abcdef1", "A B"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.PasswordHash == "Abcdef1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Abcdef1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !user.IsActive {
		t.Fatalf("new users must be active")
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", user.Roles)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, _, err := svc.Register(context.Background(), registerInput("a@x.com", "Abcdef1", "A B")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), registerInput("a@x.com", "Abcdef2", "A C")); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_RoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, _, err := svc.Register(context.Background(), registerInput("a@x.com", "Abcdef1", "A B")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "a@x.com", "Abcdef1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	// The issued token must verify back to the same identity.
	claims, err := svc.tokens.Verify(token)
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, _, _ = svc.Register(context.Background(), registerInput("a@x.com", "Abcdef1", "A B"))
	if _, _, err := svc.Login(context.Background(), "a@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	// Unknown account and wrong password must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, _, err := svc.Register(context.Background(), registerInput("a@x.com", "Abcdef1", "A B"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users[user.ID].IsActive = false

	if _, _, err := svc.Login(context.Background(), "a@x.com", "Abcdef1"); err != domain.ErrInactiveUser {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
}

func TestAuthService_Login_NoRoles(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, _, err := svc.Register(context.Background(), registerInput("a@x.com", "Abcdef1", "A B"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users[user.ID].Roles = nil

	if _, _, err := svc.Login(context.Background(), "a@x.com", "Abcdef1"); err != domain.ErrNoRolesAssigned {
		t.Fatalf("expected ErrNoRolesAssigned, got %v", err)
	}
}

func TestAuthService_CheckStatus(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, _, err := svc.Register(context.Background(), registerInput("a@x.com", "Abcdef1", "A B"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.CheckStatus(context.Background(), user)
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	claims, err := svc.tokens.Verify(token)
	if err != nil || claims.UserID != user.ID {
		t.Fatalf("refreshed token invalid: %v %+v", err, claims)
	}
}
