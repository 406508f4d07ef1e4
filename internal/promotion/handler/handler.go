package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/nortia/backoffice/internal/pkg/validate"
	"github.com/nortia/backoffice/internal/promotion"
	"github.com/nortia/backoffice/internal/promotion/dto"
	"go.uber.org/zap"
)

type PromotionHandler struct {
	uc     promotion.UseCase
	logger *zap.Logger
}

func NewPromotionHandler(uc promotion.UseCase, log *zap.Logger) *PromotionHandler {
	return &PromotionHandler{uc: uc, logger: log}
}

// Create - POST /products/:id/promotions
func (h *PromotionHandler) Create(c *fiber.Ctx) error {
	var input dto.CreatePromotionInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid request body")
	}
	input.ProductID = c.Params("id")
	if err := validate.Struct(&input); err != nil {
		return err
	}

	promo, err := h.uc.CreatePromotion(c.Context(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(promo)
}

// List - GET /products/:id/promotions
func (h *PromotionHandler) List(c *fiber.Ctx) error {
	promos, err := h.uc.ListPromotions(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(promos)
}

// Update - PATCH /products/:id/promotions/:promoId
func (h *PromotionHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdatePromotionInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid request body")
	}
	input.ProductID = c.Params("id")
	input.ID = c.Params("promoId")
	if err := validate.Struct(&input); err != nil {
		return err
	}

	promo, err := h.uc.UpdatePromotion(c.Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(promo)
}

// Delete - DELETE /products/:id/promotions/:promoId
func (h *PromotionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeletePromotion(c.Context(), c.Params("id"), c.Params("promoId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
