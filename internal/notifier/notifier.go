package notifier

import (
	"context"

	"github.com/nortia/backoffice/internal/model"
)

// Notifier is the best-effort outbound side channel for order events.
// Implementations must never propagate failures to the caller; a lost
// notification must not fail the order.
type Notifier interface {
	OrderCreated(ctx context.Context, order *model.Order)
	OrderStatusChanged(ctx context.Context, order *model.Order, prev model.OrderStatus)
}

// Multi fans an event out to several notifiers.
type Multi []Notifier

func (m Multi) OrderCreated(ctx context.Context, order *model.Order) {
	for _, n := range m {
		n.OrderCreated(ctx, order)
	}
}

func (m Multi) OrderStatusChanged(ctx context.Context, order *model.Order, prev model.OrderStatus) {
	for _, n := range m {
		n.OrderStatusChanged(ctx, order, prev)
	}
}
