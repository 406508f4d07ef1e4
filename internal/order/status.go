package order

import (
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/order/dto"
)

// StockEffect says how a status transition touches stock.
type StockEffect int

const (
	EffectNone StockEffect = iota
	// EffectDecrement subtracts the ordered quantities from stock.
	EffectDecrement
	// EffectIncrement restores the ordered quantities to stock.
	EffectIncrement
)

// EffectFor maps a status transition to its stock effect. Stock moves
// exactly when an order crosses the COMPLETED boundary: entering COMPLETED
// decrements, leaving it increments. Every other transition, including
// setting the same status again, leaves stock untouched.
func EffectFor(prev, next model.OrderStatus) StockEffect {
	if prev == next {
		return EffectNone
	}
	if next == model.StatusCompleted {
		return EffectDecrement
	}
	if prev == model.StatusCompleted {
		return EffectIncrement
	}
	return EffectNone
}

// StockDeltas builds the adjustments for one transition: every item moves
// its product's stock, and additionally its variant's when it has one.
func StockDeltas(items []model.OrderItem, effect StockEffect) []dto.StockDelta {
	var sign int
	switch effect {
	case EffectDecrement:
		sign = -1
	case EffectIncrement:
		sign = 1
	default:
		return nil
	}

	deltas := make([]dto.StockDelta, 0, len(items))
	for _, item := range items {
		deltas = append(deltas, dto.StockDelta{
			ProductID: item.ProductID,
			Delta:     sign * item.Quantity,
		})
		if item.VariantID != nil {
			deltas = append(deltas, dto.StockDelta{
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Delta:     sign * item.Quantity,
			})
		}
	}
	return deltas
}
