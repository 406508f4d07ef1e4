package auth

import (
	"context"

	"github.com/nortia/backoffice/internal/model"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}
