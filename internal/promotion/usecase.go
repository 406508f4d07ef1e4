package promotion

import (
	"context"

	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/promotion/dto"
)

type UseCase interface {
	CreatePromotion(ctx context.Context, input *dto.CreatePromotionInput) (*model.Promotion, error)
	ListPromotions(ctx context.Context, productID string) ([]model.Promotion, error)
	UpdatePromotion(ctx context.Context, input *dto.UpdatePromotionInput) (*model.Promotion, error)
	DeletePromotion(ctx context.Context, productID, id string) error
}
