package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

// ErrMissingSecret is returned when a TokenService is constructed without
// a signing secret. Main treats it as a fatal configuration error.
var ErrMissingSecret = errors.New("token signing secret is not configured")

// TokenService issues and verifies signed, time-limited bearer tokens
// carrying an identity claim. Tokens are stateless: expiry is the only
// server-independent invalidation mechanism.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs an HS256 token for the user with the configured TTL.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"uid":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token string. Malformed tokens, bad
// signatures, wrong algorithms and expired tokens all collapse into
// domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return ports.TokenClaims{UserID: uid, Email: email}, nil
}
