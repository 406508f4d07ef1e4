package promotion

import (
	"testing"
	"time"

	"github.com/nortia/backoffice/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promo(id string, percentOff *int, priceOff *decimal.Decimal, active bool, start, end time.Time) model.Promotion {
	return model.Promotion{
		BaseModel:  model.BaseModel{ID: id},
		Title:      "promo " + id,
		PercentOff: percentOff,
		PriceOff:   priceOff,
		StartsAt:   start,
		EndsAt:     end,
		IsActive:   active,
	}
}

func intPtr(i int) *int                          { return &i }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestBestActivePicksLowestPrice(t *testing.T) {
	now := time.Now()
	base := decimal.NewFromInt(40)
	promos := []model.Promotion{
		promo("p1", intPtr(10), nil, true, now.Add(-time.Hour), now.Add(time.Hour)), // -> 36
		promo("p2", nil, decPtr(decimal.NewFromInt(5)), true, now.Add(-time.Hour), now.Add(time.Hour)), // -> 35
	}

	sale := BestActive(base, promos, now)
	require.NotNil(t, sale)
	assert.Equal(t, "p2", sale.PromotionID)
	assert.True(t, sale.SalePrice.Equal(decimal.NewFromInt(35)), "got %s", sale.SalePrice)
}

func TestBestActiveWindowAndFlag(t *testing.T) {
	now := time.Now()
	base := decimal.NewFromInt(40)

	cases := []struct {
		name   string
		promos []model.Promotion
	}{
		{"not started", []model.Promotion{
			promo("p", intPtr(50), nil, true, now.Add(time.Hour), now.Add(2*time.Hour)),
		}},
		{"ended", []model.Promotion{
			promo("p", intPtr(50), nil, true, now.Add(-2*time.Hour), now.Add(-time.Hour)),
		}},
		{"inactive flag", []model.Promotion{
			promo("p", intPtr(50), nil, false, now.Add(-time.Hour), now.Add(time.Hour)),
		}},
		{"no discount fields", []model.Promotion{
			promo("p", nil, nil, true, now.Add(-time.Hour), now.Add(time.Hour)),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, BestActive(base, tc.promos, now))
		})
	}
}

func TestBestActiveRejectsNonReducingDiscount(t *testing.T) {
	now := time.Now()
	base := decimal.NewFromInt(40)

	// priceOff of zero leaves the price at base; must not be selected.
	promos := []model.Promotion{
		promo("p", nil, decPtr(decimal.Zero), true, now.Add(-time.Hour), now.Add(time.Hour)),
	}
	assert.Nil(t, BestActive(base, promos, now))
}

func TestEffectivePriceClampsAtZero(t *testing.T) {
	base := decimal.NewFromInt(10)
	p := promo("p", nil, decPtr(decimal.NewFromInt(25)), true, time.Time{}, time.Time{})

	price, ok := EffectivePrice(base, &p)
	require.True(t, ok)
	assert.True(t, price.IsZero(), "got %s", price)
}

func TestEffectivePricePercentRounding(t *testing.T) {
	base := decimal.RequireFromString("19.99")
	p := promo("p", intPtr(15), nil, true, time.Time{}, time.Time{})

	price, ok := EffectivePrice(base, &p)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("16.99")), "got %s", price)
}
