package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/George-lab-star/ToDoListMonolith/internal/domain"
	"github.com/George-lab-star/ToDoListMonolith/internal/repository"
	"github.com/George-lab-star/ToDoListMonolith/pkg/hash"
)

// Custom errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// TokenIssuer is the token capability the auth flows depend on.
// Satisfied by *jwt.TokenService.
type TokenIssuer interface {
	CreateAccessToken(user *domain.User) (string, error)
	CreateRefreshToken(user *domain.User) (string, error)
}

type AuthService struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.RefreshTokenRepository
	tokenService TokenIssuer
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	tokenService TokenIssuer,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
	}
}

// Authenticate verifies email/password against the stored record. It is
// read-only: no tokens are issued and nothing is written. The password is
// never checked when the user does not exist.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
		}
		return nil, err
	}

	valid, err := hash.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, fmt.Errorf("%w for %s", ErrIncorrectPassword, email)
	}

	return user, nil
}

// Login verifies credentials and issues a fresh token pair. The refresh
// token is persisted keyed by user id, replacing any previous one.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Logout drops the stored refresh token for the user. Logging out twice
// is not an error; the second delete is a no-op.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.Delete(ctx, userID)
}

// Refresh issues a brand-new pair for an already-authenticated user and
// rotates the store entry. The presented refresh token must match the one
// currently stored: a logically revoked token cannot mint new sessions
// even while it is still cryptographically valid.
func (s *AuthService) Refresh(ctx context.Context, user *domain.User, presentedToken string) (*domain.TokenPair, error) {
	stored, err := s.tokenRepo.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if stored == "" || stored != presentedToken {
		return nil, ErrInvalidRefreshToken
	}

	return s.issuePair(ctx, user)
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.tokenService.CreateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenService.CreateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Store(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
