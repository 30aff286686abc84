package service

import (
	"testing"
	"time"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc, err := NewTokenService("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	user := &domain.User{ID: "user-1", Email: "a@x.com"}
	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenService_VerifyExpired(t *testing.T) {
	svc, err := NewTokenService("secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	// ttl <= 0 falls back to an hour, so build an expired service directly
	svc.ttl = -time.Minute

	token, err := svc.Issue(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	issuer, _ := NewTokenService("secret-a", time.Hour)
	verifier, _ := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	svc, _ := NewTokenService("secret", time.Hour)
	if _, err := svc.Verify("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestNewTokenService_MissingSecret(t *testing.T) {
	if _, err := NewTokenService("", time.Hour); err != ErrMissingSecret {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}
