package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/nortia/backoffice/internal/promotion"
	"github.com/nortia/backoffice/internal/promotion/dto"
	"go.uber.org/zap"
)

type promotionUseCase struct {
	repo   promotion.Repository
	logger *zap.Logger
}

func NewPromotionUseCase(repo promotion.Repository, log *zap.Logger) promotion.UseCase {
	return &promotionUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *promotionUseCase) CreatePromotion(ctx context.Context, input *dto.CreatePromotionInput) (*model.Promotion, error) {
	if input.PercentOff == nil && input.PriceOff == nil {
		return nil, apperror.Validation("promotion requires percent_off or price_off")
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, apperror.Validation("ends_at must be after starts_at")
	}

	now := time.Now()
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	promo := &model.Promotion{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProductID:   input.ProductID,
		Title:       input.Title,
		Description: input.Description,
		PercentOff:  input.PercentOff,
		PriceOff:    input.PriceOff,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		IsActive:    isActive,
	}

	if err := uc.repo.Create(ctx, promo); err != nil {
		return nil, apperror.Internal(err)
	}
	return promo, nil
}

func (uc *promotionUseCase) ListPromotions(ctx context.Context, productID string) ([]model.Promotion, error) {
	promos, err := uc.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return promos, nil
}

func (uc *promotionUseCase) UpdatePromotion(ctx context.Context, input *dto.UpdatePromotionInput) (*model.Promotion, error) {
	promo, err := uc.loadOwned(ctx, input.ProductID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		promo.Title = *input.Title
	}
	if input.Description != nil {
		promo.Description = input.Description
	}
	if input.PercentOff != nil {
		promo.PercentOff = input.PercentOff
	}
	if input.PriceOff != nil {
		promo.PriceOff = input.PriceOff
	}
	if input.StartsAt != nil {
		promo.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		promo.EndsAt = *input.EndsAt
	}
	if input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}

	if !promo.EndsAt.After(promo.StartsAt) {
		return nil, apperror.Validation("ends_at must be after starts_at")
	}

	promo.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, promo); err != nil {
		return nil, apperror.Internal(err)
	}
	return promo, nil
}

func (uc *promotionUseCase) DeletePromotion(ctx context.Context, productID, id string) error {
	if _, err := uc.loadOwned(ctx, productID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	uc.logger.Info("promotion deleted", zap.String("promotion_id", id))
	return nil
}

// loadOwned resolves the promotion and checks it belongs to the product in
// the request path.
func (uc *promotionUseCase) loadOwned(ctx context.Context, productID, id string) (*model.Promotion, error) {
	promo, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if promo == nil {
		return nil, apperror.NotFound("promotion not found")
	}
	if promo.ProductID != productID {
		return nil, apperror.Conflict("promotion belongs to a different product")
	}
	return promo, nil
}
