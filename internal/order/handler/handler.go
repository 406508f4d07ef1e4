package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/order"
	"github.com/nortia/backoffice/internal/order/dto"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/nortia/backoffice/internal/pkg/httpx"
	"github.com/nortia/backoffice/internal/pkg/validate"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger *zap.Logger
}

func NewOrderHandler(uc order.UseCase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

// Create - POST /orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return err
	}

	o, err := h.uc.CreateOrder(c.Context(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// List - GET /orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page, pageSize := httpx.ParsePagination(c)

	orders, count, err := h.uc.ListOrders(c.Context(), &dto.OrderFilters{
		Query:    c.Query("q"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}

	return c.JSON(httpx.ListResponse{
		Total:    count,
		Page:     page,
		PageSize: pageSize,
		Rows:     orders,
	})
}

// Get - GET /orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	o, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// SetStatus - PATCH /orders/:id/status
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	var input dto.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return err
	}

	o, err := h.uc.SetStatus(c.Context(), c.Params("id"), model.OrderStatus(input.Status))
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// UpdateNotes - PATCH /orders/:id/note
func (h *OrderHandler) UpdateNotes(c *fiber.Ctx) error {
	var input dto.UpdateNotesInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid request body")
	}

	o, err := h.uc.UpdateNotes(c.Context(), c.Params("id"), &input)
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// Delete - DELETE /orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteOrder(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportCSV - GET /orders/export/csv
func (h *OrderHandler) ExportCSV(c *fiber.Ctx) error {
	out, err := h.uc.ExportCSV(c.Context(), &dto.OrderFilters{
		Query:  c.Query("q"),
		Status: c.Query("status"),
	})
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("orders-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}
