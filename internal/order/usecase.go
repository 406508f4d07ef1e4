package order

import (
	"context"

	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	SetStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	UpdateNotes(ctx context.Context, id string, input *dto.UpdateNotesInput) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	ExportCSV(ctx context.Context, filters *dto.OrderFilters) ([]byte, error)
}
