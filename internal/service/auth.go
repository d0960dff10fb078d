package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/festivefusion/festival-api/internal/config"
	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/pkg/jwthelper"
	"github.com/festivefusion/festival-api/internal/repository"
)

var (
	ErrUserEmailExists    = repository.ErrUserEmailExists
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("permission denied")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenStore remembers revoked token ids.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthService struct {
	repo     AuthUserRepository
	tokens   TokenStore
	apiConf  *config.APIConfig
	authConf *config.AuthConfig
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(repo AuthUserRepository, tokens TokenStore, apiConf *config.APIConfig, authConf *config.AuthConfig) *AuthService {
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		apiConf:  apiConf,
		authConf: authConf,
		now:      time.Now,
	}
}

// Register creates a user with a hashed password and logs them straight in.
func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, string, error) {
	user.Email = normalizeEmail(user.Email)
	user.Name = strings.TrimSpace(user.Name)
	user.Role = s.roleFor(user.Email)
	if err := user.Validate(); err != nil {
		return domain.User{}, "", err
	}

	if err := s.checkEmailExists(ctx, user.Email); err != nil {
		return domain.User{}, "", err
	}

	hash, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, "", err
	}
	user.Password = hash

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("s.repo.Create -> %w", err)
	}

	token, err := s.IssueToken(created)
	if err != nil {
		return domain.User{}, "", err
	}

	return created, token, nil
}

// Login checks the credentials and issues a session token. An unknown email
// and a wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn the same bcrypt work a real comparison would.
			_ = bcrypt.CompareHashAndPassword(s.dummyPasswordHash(), []byte(password))
			return domain.User{}, "", ErrInvalidCredentials
		}

		return domain.User{}, "", fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return domain.User{}, "", err
	}

	return user, token, nil
}

func (s *AuthService) IssueToken(user domain.User) (string, error) {
	token, err := jwthelper.GenerateToken([]byte(s.apiConf.JWTSigningKey), user.ID, user.Role, s.apiConf.JWTTTL)
	if err != nil {
		return "", fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return token, nil
}

// VerifyToken returns the claims of a valid, unexpired and unrevoked token.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (domain.Claims, error) {
	claims, err := jwthelper.ParseToken([]byte(s.apiConf.JWTSigningKey), token)
	if err != nil {
		return domain.Claims{}, ErrUnauthenticated
	}

	if claims.ID != "" {
		revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			return domain.Claims{}, fmt.Errorf("s.tokens.IsRevoked -> %w", err)
		}
		if revoked {
			return domain.Claims{}, ErrUnauthenticated
		}
	}

	return domain.Claims{
		UserID:    claims.UserID,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *AuthService) RequireRole(claims domain.Claims, role string) error {
	if claims.Role != role {
		return ErrForbidden
	}

	return nil
}

// Logout revokes the token behind claims until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims domain.Claims) error {
	if claims.TokenID == "" {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.tokens.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("s.tokens.Revoke -> %w", err)
	}

	zap.L().Debug("token revoked", zap.String("user_id", claims.UserID), zap.Duration("ttl", ttl))

	return nil
}

func (s *AuthService) roleFor(email string) string {
	for _, admin := range s.authConf.AdminEmails {
		if normalizeEmail(admin) == email {
			return domain.RoleAdmin
		}
	}

	return domain.RoleUser
}

func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return ErrUserEmailExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return nil
}

func (s *AuthService) dummyPasswordHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("festive-fusion"), bcrypt.DefaultCost)
	})

	return s.dummyHash
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
