package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/notifier"
	"github.com/nortia/backoffice/internal/order"
	"github.com/nortia/backoffice/internal/order/dto"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo            order.Repository
	notifier        notifier.Notifier
	variantsEnabled bool
	logger          *zap.Logger
}

func NewOrderUseCase(repo order.Repository, n notifier.Notifier, variantsEnabled bool, log *zap.Logger) order.UseCase {
	return &orderUseCase{
		repo:            repo,
		notifier:        n,
		variantsEnabled: variantsEnabled,
		logger:          log,
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	items, err := uc.hydrateItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	subtotal, total := order.CalcTotals(items)

	o := &model.Order{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerName:  input.Customer.Name,
		CustomerEmail: input.Customer.Email,
		CustomerPhone: input.Customer.Phone,
		Status:        model.StatusReceived,
		Note:          input.Note,
		Recurrence:    input.Recurrence,
		Subtotal:      subtotal,
		Total:         total,
		Currency:      "USD",
		Items:         items,
	}

	customer := &model.Customer{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:          input.Customer.Email,
		Name:           input.Customer.Name,
		Phone:          input.Customer.Phone,
		Company:        input.Customer.Company,
		MarketingOptIn: input.Customer.MarketingOptIn,
	}

	var address *model.Address
	if input.Address != nil {
		country := input.Address.Country
		if country == "" {
			country = "US"
		}
		address = &model.Address{
			BaseModel: model.BaseModel{
				ID:        uuid.New().String(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Line1:      input.Address.Line1,
			Line2:      input.Address.Line2,
			District:   input.Address.District,
			City:       input.Address.City,
			State:      input.Address.State,
			PostalCode: input.Address.PostalCode,
			Country:    country,
		}
	}

	if err := uc.repo.CreateGraph(ctx, o, customer, address); err != nil {
		uc.logger.Error("failed to create order", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	if err := uc.repo.LoadRelated(ctx, o); err != nil {
		return nil, apperror.Internal(err)
	}

	if uc.notifier != nil {
		go uc.notifier.OrderCreated(context.Background(), o)
	}

	uc.logger.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return o, nil
}

// hydrateItems resolves catalog snapshots for each requested item. A
// submitted unit price is kept; an omitted one is backfilled from the
// variant when one is given, otherwise from the product. Promotions are
// never consulted here. Any unknown product or variant aborts the whole
// order.
func (uc *orderUseCase) hydrateItems(ctx context.Context, inputs []dto.ItemInput) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0, len(inputs))
	for i, in := range inputs {
		p, err := uc.repo.FindProductByID(ctx, in.ProductID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if p == nil {
			return nil, apperror.NotFound(fmt.Sprintf("product %s not found", in.ProductID))
		}

		item := model.OrderItem{
			ID:          uuid.New().String(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    in.Quantity,
			UnitPrice:   p.Price,
		}

		if in.VariantID != nil {
			if !uc.variantsEnabled {
				return nil, apperror.Validation("variants are not enabled",
					apperror.FieldError{Field: fmt.Sprintf("items[%d].variant_id", i), Message: "variants are not enabled"})
			}
			v, err := uc.repo.FindVariantByID(ctx, *in.VariantID)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			if v == nil || v.ProductID != p.ID {
				return nil, apperror.NotFound(fmt.Sprintf("variant %s not found", *in.VariantID))
			}
			name := v.Name
			item.VariantID = &v.ID
			item.VariantName = &name
			item.UnitPrice = v.Price
		}

		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return nil, apperror.Validation("unit price must not be negative",
					apperror.FieldError{Field: fmt.Sprintf("items[%d].unit_price", i), Message: "must not be negative"})
			}
			item.UnitPrice = *in.UnitPrice
		}

		items = append(items, item)
	}
	return items, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if o == nil {
		return nil, apperror.NotFound("order not found")
	}
	if err := uc.repo.LoadRelated(ctx, o); err != nil {
		return nil, apperror.Internal(err)
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	if filters.Status != "" && !model.OrderStatus(filters.Status).Valid() {
		return nil, 0, apperror.Validation("unknown status filter")
	}

	orders, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	refs := make([]*model.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := uc.repo.LoadItems(ctx, refs); err != nil {
		return nil, 0, apperror.Internal(err)
	}

	return orders, count, nil
}

func (uc *orderUseCase) SetStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperror.Validation("unknown status")
	}

	// The repository reads the previous status, computes the stock effect
	// and persists the new status in one transaction under a row lock, so
	// a concurrent transition cannot feed a stale previous status into the
	// delta computation.
	prev, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, apperror.NotFound("order not found")
		}
		if errors.Is(err, order.ErrInsufficientStock) {
			return nil, apperror.Conflict("insufficient stock to complete order")
		}
		return nil, apperror.Internal(err)
	}

	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if prev != status {
		if uc.notifier != nil {
			go uc.notifier.OrderStatusChanged(context.Background(), o, prev)
		}
		uc.logger.Info("order status changed",
			zap.String("order_id", id),
			zap.String("from", string(prev)),
			zap.String("to", string(status)),
		)
	}
	return o, nil
}

func (uc *orderUseCase) UpdateNotes(ctx context.Context, id string, input *dto.UpdateNotesInput) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if o == nil {
		return nil, apperror.NotFound("order not found")
	}

	if err := uc.repo.UpdateNotes(ctx, id, input.Note, input.AdminNote); err != nil {
		return nil, apperror.Internal(err)
	}
	return uc.GetOrder(ctx, id)
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, id string) error {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if o == nil {
		return apperror.NotFound("order not found")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	uc.logger.Info("order deleted", zap.String("order_id", id))
	return nil
}

func (uc *orderUseCase) ExportCSV(ctx context.Context, filters *dto.OrderFilters) ([]byte, error) {
	if filters.Status != "" && !model.OrderStatus(filters.Status).Valid() {
		return nil, apperror.Validation("unknown status filter")
	}

	// Export ignores pagination and covers the full filtered set. Rows
	// carry address columns, so full relations are loaded.
	filters.PageSize = 0
	orders, _, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range orders {
		if err := uc.repo.LoadRelated(ctx, &orders[i]); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	out, err := order.WriteCSV(orders)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}
