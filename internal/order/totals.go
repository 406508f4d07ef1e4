package order

import (
	"github.com/nortia/backoffice/internal/model"
	"github.com/shopspring/decimal"
)

// CalcTotals sums quantity times unit price across items and rounds the
// result to two decimal places, half away from zero.
func CalcTotals(items []model.OrderItem) (subtotal, total decimal.Decimal) {
	sum := decimal.Zero
	for _, item := range items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	subtotal = sum.Round(2)
	// No tax or shipping stage yet, the total equals the subtotal.
	total = subtotal
	return subtotal, total
}
