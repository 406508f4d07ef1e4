package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nortia/backoffice/internal/category"
	"github.com/nortia/backoffice/internal/category/dto"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/nortia/backoffice/internal/pkg/httpx"
	"github.com/nortia/backoffice/internal/pkg/validate"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger *zap.Logger
}

func NewCategoryHandler(uc category.UseCase, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: log}
}

// Create - POST /categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return err
	}

	cat, err := h.uc.CreateCategory(c.Context(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// List - GET /categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	page, pageSize := httpx.ParsePagination(c)

	filters := &dto.CategoryFilters{
		Page:     page,
		PageSize: pageSize,
	}
	if parent, ok := c.Queries()["parentId"]; ok {
		filters.ParentID = &parent
	}

	categories, count, err := h.uc.ListCategories(c.Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(httpx.ListResponse{
		Total:    count,
		Page:     page,
		PageSize: pageSize,
		Rows:     categories,
	})
}

// Get - GET /categories/:id
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	cat, err := h.uc.GetCategory(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(cat)
}

// Update - PATCH /categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid request body")
	}
	input.ID = c.Params("id")
	if err := validate.Struct(&input); err != nil {
		return err
	}

	cat, err := h.uc.UpdateCategory(c.Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(cat)
}

// Delete - DELETE /categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
