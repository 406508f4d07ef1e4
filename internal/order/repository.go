package order

import (
	"context"
	"errors"

	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/order/dto"
)

// ErrInsufficientStock is returned by UpdateStatus when a stock delta would
// drive a product or variant stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrOrderNotFound is returned by UpdateStatus when the order id does not
// resolve.
var ErrOrderNotFound = errors.New("order not found")

// Repository persists orders. CreateGraph and UpdateStatus run their writes
// in a single transaction.
type Repository interface {
	// CreateGraph upserts the customer by email, optionally stores a new
	// address, and inserts the order with its items atomically.
	CreateGraph(ctx context.Context, order *model.Order, customer *model.Customer, address *model.Address) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	LoadItems(ctx context.Context, orders []*model.Order) error
	LoadRelated(ctx context.Context, order *model.Order) error
	// UpdateStatus loads the order and its items under a row lock, computes
	// the stock effect of the transition from the status read inside the
	// transaction, applies the deltas and persists the new status, all
	// atomically. Returns the previous status. A delta that would drive
	// stock negative aborts the whole transaction.
	UpdateStatus(ctx context.Context, id string, next model.OrderStatus) (model.OrderStatus, error)
	UpdateNotes(ctx context.Context, id string, note, adminNote *string) error
	Delete(ctx context.Context, id string) error

	FindProductByID(ctx context.Context, id string) (*model.Product, error)
	FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error)
}
