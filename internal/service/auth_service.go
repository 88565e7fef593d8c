package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fashop/marketplace-api/internal/auth"
	"github.com/fashop/marketplace-api/internal/config"
	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/repository"
	"github.com/fashop/marketplace-api/pkg/errors"
)

type AuthService struct {
	repos  *repository.Repositories
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(repos *repository.Repositories, cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		repos:  repos,
		cfg:    cfg,
		logger: logger,
	}
}

// Login verifies dashboard credentials and issues a bearer token. Unknown
// emails and wrong passwords return the same error so the response does not
// reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, *domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repos.User.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, &errors.ErrUnauthorized{Message: "invalid credentials"}
	}
	if !user.IsActive {
		return "", nil, &errors.ErrUnauthorized{Message: "account disabled"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, &errors.ErrUnauthorized{Message: "invalid credentials"}
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.ID, user.Email, user.Role, s.cfg.TokenTTL)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.String("email", email), zap.Error(err))
		return "", nil, err
	}

	s.logger.Info("User logged in", zap.String("email", email))
	return token, user, nil
}
