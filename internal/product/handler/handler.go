package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nortia/backoffice/internal/auth"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/nortia/backoffice/internal/pkg/httpx"
	"github.com/nortia/backoffice/internal/pkg/validate"
	"github.com/nortia/backoffice/internal/product"
	"github.com/nortia/backoffice/internal/product/dto"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger *zap.Logger
}

func NewProductHandler(uc product.UseCase, log *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

// List - GET /products
// Public callers get active products with redacted fields; admins may pass
// ?all=1 to include inactive products.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	isAdmin := auth.IsAdmin(c)
	page, pageSize := httpx.ParsePagination(c)

	filters := &dto.ProductFilters{
		SearchQuery:     c.Query("q"),
		CategoryID:      c.Query("categoryId"),
		IncludeInactive: isAdmin && c.QueryBool("all"),
		SortBy:          c.Query("sortBy"),
		SortOrder:       c.Query("sortOrder"),
		Page:            page,
		PageSize:        pageSize,
	}

	products, count, err := h.uc.ListProducts(c.Context(), filters)
	if err != nil {
		return err
	}

	now := time.Now()
	views := make([]product.View, len(products))
	for i := range products {
		views[i] = product.NewView(&products[i], isAdmin, now)
	}

	return c.JSON(httpx.ListResponse{
		Total:    count,
		Page:     page,
		PageSize: pageSize,
		Rows:     views,
	})
}

// Get - GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	isAdmin := auth.IsAdmin(c)
	if !isAdmin && !p.IsActive {
		return apperror.NotFound("product not found")
	}
	return c.JSON(product.NewView(p, isAdmin, time.Now()))
}

// Create - POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return err
	}

	p, err := h.uc.CreateProduct(c.Context(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product.NewView(p, true, time.Now()))
}

// Update - PUT/PATCH /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid request body")
	}
	input.ID = c.Params("id")
	if err := validate.Struct(&input); err != nil {
		return err
	}

	p, err := h.uc.UpdateProduct(c.Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(product.NewView(p, true, time.Now()))
}

// Delete - DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	archived, err := h.uc.DeleteProduct(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if archived {
		return c.JSON(fiber.Map{"archived": true})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
