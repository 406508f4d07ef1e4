package usecase

import (
	"context"
	"time"

	"github.com/nortia/backoffice/internal/auth"
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authUseCase struct {
	repo     auth.Repository
	secret   string
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewAuthUseCase(repo auth.Repository, secret string, tokenTTL time.Duration, log *zap.Logger) auth.UseCase {
	return &authUseCase{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   log,
	}
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	// Same response for unknown email and wrong password, so the endpoint
	// does not reveal which emails exist.
	if user == nil {
		return "", nil, apperror.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.Unauthorized("invalid credentials")
	}

	token, err := auth.SignToken(uc.secret, user, uc.tokenTTL)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	uc.logger.Info("user logged in", zap.String("user_id", user.ID))
	return token, user, nil
}

func (uc *authUseCase) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("account no longer exists")
	}
	return user, nil
}
