package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/George-lab-star/ToDoListMonolith/internal/domain"
)

var (
	ErrEmptySecret  = errors.New("signing secret is required")
	ErrInvalidToken = errors.New("invalid token")
)

type TokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
}

func NewTokenService(secret string, accessExpiry, refreshExpiry time.Duration, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &TokenService{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		issuer:        issuer,
	}, nil
}

// CreateAccessToken issues a short-lived token for API calls
func (s *TokenService) CreateAccessToken(user *domain.User) (string, error) {
	return s.create(user, s.accessExpiry)
}

// CreateRefreshToken issues a longer-lived token for minting new pairs.
// Access and refresh tokens share the same claim shape and signing path;
// only the lifetime differs.
func (s *TokenService) CreateRefreshToken(user *domain.User) (string, error) {
	return s.create(user, s.refreshExpiry)
}

func (s *TokenService) create(user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// DecodeToken verifies the signature and returns the claims. Expiry is
// deliberately not checked here: decode answers "is this token ours",
// the auth middleware answers "is it still current" by reading the exp
// claim itself.
func (s *TokenService) DecodeToken(tokenString string) (*domain.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
