package auth

import (
	"context"

	"github.com/nortia/backoffice/internal/model"
)

type UseCase interface {
	// Login verifies credentials and returns a signed bearer token with the
	// authenticated user.
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Me(ctx context.Context, userID string) (*model.User, error)
}
