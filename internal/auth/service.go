package auth

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// UserRepository локальная проекция пользователей SSO.
type UserRepository interface {
	GetOrCreate(ctx context.Context, externalID uint) (*models.User, error)
}

// Identity аутентифицированный пользователь запроса.
type Identity struct {
	UserID      uint
	User        *models.User
	Permissions []Permission
}

func (i *Identity) HasPermission(p Permission) bool {
	return HasPermission(i.Permissions, p)
}

// AuthService проверка токенов через SSO и резолв локального пользователя.
type AuthService struct {
	verifier TokenVerifier
	userRepo UserRepository
	logger   *logrus.Entry
}

func NewAuthService(verifier TokenVerifier, userRepo UserRepository, logger *logrus.Logger) *AuthService {
	return &AuthService{
		verifier: verifier,
		userRepo: userRepo,
		logger:   logger.WithField("module", "auth"),
	}
}

// Authenticate проверяет токен в SSO и заводит локального пользователя
// при первом обращении.
func (a *AuthService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	info, err := a.verifier.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, userErr := a.userRepo.GetOrCreate(ctx, info.ExternalUserID)
	if userErr != nil {
		return nil, errors.Wrap(userErr, "authenticate: resolve local user")
	}

	return &Identity{
		UserID:      user.ID,
		User:        user,
		Permissions: ParseScope(info.Scope),
	}, nil
}
