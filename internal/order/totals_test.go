package order

import (
	"testing"

	"github.com/nortia/backoffice/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(qty int, price string) model.OrderItem {
	return model.OrderItem{Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestCalcTotals(t *testing.T) {
	cases := []struct {
		name  string
		items []model.OrderItem
		want  string
	}{
		{"empty", nil, "0"},
		{"single line", []model.OrderItem{item(3, "12.99")}, "38.97"},
		{"multiple lines", []model.OrderItem{item(2, "10.00"), item(1, "4.50")}, "24.5"},
		{"rounds half up", []model.OrderItem{item(1, "10.005")}, "10.01"},
		{"rounds half up accumulated", []model.OrderItem{item(3, "0.335")}, "1.01"},
		{"free item", []model.OrderItem{item(5, "0")}, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subtotal, total := CalcTotals(tc.items)
			assert.True(t, subtotal.Equal(decimal.RequireFromString(tc.want)),
				"subtotal = %s, want %s", subtotal, tc.want)
			assert.True(t, total.Equal(subtotal))
		})
	}
}
