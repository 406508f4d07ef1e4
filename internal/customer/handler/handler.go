package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nortia/backoffice/internal/customer"
	"github.com/nortia/backoffice/internal/customer/dto"
	"github.com/nortia/backoffice/internal/pkg/httpx"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	uc     customer.UseCase
	logger *zap.Logger
}

func NewCustomerHandler(uc customer.UseCase, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, logger: log}
}

// List - GET /customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page, pageSize := httpx.ParsePagination(c)

	customers, count, err := h.uc.ListCustomers(c.Context(), &dto.CustomerFilters{
		Query:    c.Query("q"),
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
		Rows:     customers,
	})
}

// Get - GET /customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	cust, err := h.uc.GetCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(cust)
}
