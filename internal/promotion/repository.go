package promotion

import (
	"context"

	"github.com/nortia/backoffice/internal/model"
)

type Repository interface {
	Create(ctx context.Context, promo *model.Promotion) error
	FindByID(ctx context.Context, id string) (*model.Promotion, error)
	FindByProduct(ctx context.Context, productID string) ([]model.Promotion, error)
	Update(ctx context.Context, promo *model.Promotion) error
	Delete(ctx context.Context, id string) error
}
