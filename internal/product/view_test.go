package product

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nortia/backoffice/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct() *model.Product {
	desc := "full spec sheet"
	return &model.Product{
		BaseModel:   model.BaseModel{ID: "p1"},
		Name:        "Widget",
		Slug:        "widget",
		Description: &desc,
		Price:       decimal.RequireFromString("40.00"),
		Stock:       7,
		IsActive:    true,

		VisiblePrice:       false,
		VisibleDescription: true,
		VisibleImages:      true,
		VisiblePackageSize: true,
		VisiblePDF:         true,
	}
}

func TestViewRedactsHiddenPrice(t *testing.T) {
	p := sampleProduct()

	view := NewView(p, false, time.Now())
	data, err := json.Marshal(view)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	_, hasPrice := out["price"]
	assert.False(t, hasPrice, "hidden price must be omitted, not nulled")
	assert.Equal(t, "full spec sheet", out["description"])

	_, hasVisibility := out["visibility"]
	assert.False(t, hasVisibility, "non-admin output carries no visibility block")
	_, hasStock := out["stock"]
	assert.False(t, hasStock)
}

func TestViewAdminSeesEverything(t *testing.T) {
	p := sampleProduct()

	view := NewView(p, true, time.Now())
	require.NotNil(t, view.Price)
	assert.True(t, view.Price.Equal(decimal.RequireFromString("40.00")))

	require.NotNil(t, view.Visibility)
	assert.False(t, view.Visibility.Price, "flag keeps its true value for admins")
	assert.True(t, view.Visibility.Description)

	require.NotNil(t, view.Stock)
	assert.Equal(t, 7, *view.Stock)
}

func TestViewSaleRequiresVisiblePrice(t *testing.T) {
	now := time.Now()
	pct := 10
	p := sampleProduct()
	p.Promotions = []model.Promotion{{
		BaseModel:  model.BaseModel{ID: "promo1"},
		ProductID:  "p1",
		Title:      "ten off",
		PercentOff: &pct,
		StartsAt:   now.Add(-time.Hour),
		EndsAt:     now.Add(time.Hour),
		IsActive:   true,
	}}

	public := NewView(p, false, now)
	assert.Nil(t, public.Sale, "sale must not leak a hidden price")

	p.VisiblePrice = true
	public = NewView(p, false, now)
	require.NotNil(t, public.Sale)
	assert.True(t, public.Sale.SalePrice.Equal(decimal.RequireFromString("36.00")), "got %s", public.Sale.SalePrice)
}

func TestViewFirstCategoryOnly(t *testing.T) {
	p := sampleProduct()
	p.Categories = []model.Category{
		{BaseModel: model.BaseModel{ID: "c1"}, Name: "Primary"},
		{BaseModel: model.BaseModel{ID: "c2"}, Name: "Secondary"},
	}

	view := NewView(p, false, time.Now())
	require.NotNil(t, view.Category)
	assert.Equal(t, "c1", view.Category.ID)
}

func TestViewVariantFiltering(t *testing.T) {
	p := sampleProduct()
	p.Variants = []model.ProductVariant{
		{BaseModel: model.BaseModel{ID: "v1"}, IsActive: true},
		{BaseModel: model.BaseModel{ID: "v2"}, IsActive: false},
	}

	public := NewView(p, false, time.Now())
	require.Len(t, public.Variants, 1)
	assert.Equal(t, "v1", public.Variants[0].ID)

	admin := NewView(p, true, time.Now())
	assert.Len(t, admin.Variants, 2)
}
