package promotion

import (
	"time"

	"github.com/nortia/backoffice/internal/model"
	"github.com/shopspring/decimal"
)

// Sale is the display payload for the winning promotion on a product.
type Sale struct {
	PromotionID string          `json:"promotion_id"`
	Title       string          `json:"title"`
	SalePrice   decimal.Decimal `json:"sale_price"`
}

// EffectivePrice applies a promotion's discount to the base price. The
// result is clamped at zero. Returns false when the promotion carries no
// discount field.
func EffectivePrice(base decimal.Decimal, p *model.Promotion) (decimal.Decimal, bool) {
	var price decimal.Decimal
	switch {
	case p.PercentOff != nil:
		pct := decimal.NewFromInt(int64(*p.PercentOff)).Div(decimal.NewFromInt(100))
		price = base.Sub(base.Mul(pct)).Round(2)
	case p.PriceOff != nil:
		price = base.Sub(*p.PriceOff).Round(2)
	default:
		return decimal.Zero, false
	}

	if price.IsNegative() {
		price = decimal.Zero
	}
	return price, true
}

// BestActive scans a product's promotions and selects the one yielding the
// lowest effective price that is strictly below base. Promotions outside
// their window, inactive, or without a discount field never qualify.
func BestActive(base decimal.Decimal, promos []model.Promotion, now time.Time) *Sale {
	var best *Sale

	for i := range promos {
		p := &promos[i]
		if !p.IsActive {
			continue
		}
		if now.Before(p.StartsAt) || now.After(p.EndsAt) {
			continue
		}

		price, ok := EffectivePrice(base, p)
		if !ok {
			continue
		}
		// A discount that does not actually lower the price is treated as
		// inactive for display.
		if price.GreaterThanOrEqual(base) {
			continue
		}

		if best == nil || price.LessThan(best.SalePrice) {
			best = &Sale{
				PromotionID: p.ID,
				Title:       p.Title,
				SalePrice:   price,
			}
		}
	}

	return best
}
