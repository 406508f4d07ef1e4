package usecase

import (
	"context"
	"testing"

	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/order"
	"github.com/nortia/backoffice/internal/order/dto"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo is an in-memory order.Repository mirroring the transactional
// guarantees of the real one: UpdateStatus reads the previous status,
// computes the effect and applies all deltas or none, atomically.
// beforeUpdateStatus, when set, runs once at the start of the next
// UpdateStatus call to stand in for a transition committed by a concurrent
// request.
type fakeRepo struct {
	products           map[string]*model.Product
	variants           map[string]*model.ProductVariant
	orders             map[string]*model.Order
	created            int
	beforeUpdateStatus func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: map[string]*model.Product{},
		variants: map[string]*model.ProductVariant{},
		orders:   map[string]*model.Order{},
	}
}

func (f *fakeRepo) CreateGraph(ctx context.Context, o *model.Order, c *model.Customer, a *model.Address) error {
	cp := *o
	f.orders[o.ID] = &cp
	f.created++
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = nil
	return &cp, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	var out []model.Order
	for _, o := range f.orders {
		if filters.Status != "" && string(o.Status) != filters.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (f *fakeRepo) LoadItems(ctx context.Context, orders []*model.Order) error {
	for _, o := range orders {
		if stored, ok := f.orders[o.ID]; ok {
			o.Items = append([]model.OrderItem(nil), stored.Items...)
		}
	}
	return nil
}

func (f *fakeRepo) LoadRelated(ctx context.Context, o *model.Order) error {
	return f.LoadItems(ctx, []*model.Order{o})
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, next model.OrderStatus) (model.OrderStatus, error) {
	if f.beforeUpdateStatus != nil {
		hook := f.beforeUpdateStatus
		f.beforeUpdateStatus = nil
		hook()
	}

	o, ok := f.orders[id]
	if !ok {
		return "", order.ErrOrderNotFound
	}
	prev := o.Status

	deltas := order.StockDeltas(o.Items, order.EffectFor(prev, next))
	for _, d := range deltas {
		if d.VariantID != nil {
			if f.variants[*d.VariantID].Stock+d.Delta < 0 {
				return "", order.ErrInsufficientStock
			}
		} else if f.products[d.ProductID].Stock+d.Delta < 0 {
			return "", order.ErrInsufficientStock
		}
	}
	for _, d := range deltas {
		if d.VariantID != nil {
			f.variants[*d.VariantID].Stock += d.Delta
		} else {
			f.products[d.ProductID].Stock += d.Delta
		}
	}
	o.Status = next
	return prev, nil
}

func (f *fakeRepo) UpdateNotes(ctx context.Context, id string, note, adminNote *string) error {
	o := f.orders[id]
	if note != nil {
		o.Note = note
	}
	if adminNote != nil {
		o.AdminNote = adminNote
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeRepo) FindProductByID(ctx context.Context, id string) (*model.Product, error) {
	return f.products[id], nil
}

func (f *fakeRepo) FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error) {
	return f.variants[id], nil
}

func seedProduct(f *fakeRepo, id, name, price string, stock int) {
	f.products[id] = &model.Product{
		BaseModel: model.BaseModel{ID: id},
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		IsActive:  true,
	}
}

func seedVariant(f *fakeRepo, id, productID, name, price string, stock int) {
	f.variants[id] = &model.ProductVariant{
		BaseModel: model.BaseModel{ID: id},
		ProductID: productID,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		IsActive:  true,
	}
}

func newUC(f *fakeRepo, variantsEnabled bool) order.UseCase {
	return NewOrderUseCase(f, nil, variantsEnabled, zap.NewNop())
}

func TestCreateOrderHydratesPrices(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 50)
	seedVariant(f, "v1", "p1", "1kg", "22.50", 20)
	uc := newUC(f, true)

	o, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Dana", Email: "dana@example.com"},
		Items: []dto.ItemInput{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", VariantID: strPtr("v1"), Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].UnitPrice.Equal(decimal.RequireFromString("12.99")))
	assert.True(t, o.Items[1].UnitPrice.Equal(decimal.RequireFromString("22.50")))
	require.NotNil(t, o.Items[1].VariantName)
	assert.Equal(t, "1kg", *o.Items[1].VariantName)

	// 3 x 12.99 + 1 x 22.50
	assert.True(t, o.Subtotal.Equal(decimal.RequireFromString("61.47")), "subtotal = %s", o.Subtotal)
	assert.True(t, o.Total.Equal(o.Subtotal))
	assert.Equal(t, model.StatusReceived, o.Status)
}

func TestCreateOrderKeepsSubmittedPrice(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 50)
	uc := newUC(f, false)

	quoted := decimal.RequireFromString("10")
	o, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Jane", Email: "jane@x.com"},
		Items:    []dto.ItemInput{{ProductID: "p1", Quantity: 2, UnitPrice: &quoted}},
	})
	require.NoError(t, err)
	assert.True(t, o.Items[0].UnitPrice.Equal(quoted), "submitted price wins over catalog price")
	assert.True(t, o.Subtotal.Equal(decimal.RequireFromString("20")), "subtotal = %s", o.Subtotal)
}

func TestCreateOrderNegativePriceRejected(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 50)
	uc := newUC(f, false)

	bad := decimal.RequireFromString("-1")
	_, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Jane", Email: "jane@x.com"},
		Items:    []dto.ItemInput{{ProductID: "p1", Quantity: 1, UnitPrice: &bad}},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.As(err).Kind)
	assert.Equal(t, 0, f.created)
}

func TestCreateOrderUnknownVariantAborts(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 50)
	uc := newUC(f, true)

	_, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Dana", Email: "dana@example.com"},
		Items: []dto.ItemInput{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p1", VariantID: strPtr("missing"), Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.As(err).Kind)
	assert.Equal(t, 0, f.created, "nothing must be persisted")
}

func TestCreateOrderVariantOfOtherProduct(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 50)
	seedProduct(f, "p2", "Filter Paper", "4.50", 10)
	seedVariant(f, "v2", "p2", "Large", "6.00", 5)
	uc := newUC(f, true)

	_, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Dana", Email: "dana@example.com"},
		Items:    []dto.ItemInput{{ProductID: "p1", VariantID: strPtr("v2"), Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.As(err).Kind)
}

func TestCreateOrderVariantsDisabled(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 50)
	seedVariant(f, "v1", "p1", "1kg", "22.50", 20)
	uc := newUC(f, false)

	_, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Dana", Email: "dana@example.com"},
		Items:    []dto.ItemInput{{ProductID: "p1", VariantID: strPtr("v1"), Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.As(err).Kind)
}

func TestSetStatusStockRoundTrip(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 10)
	uc := newUC(f, false)

	o, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Dana", Email: "dana@example.com"},
		Items:    []dto.ItemInput{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, f.products["p1"].Stock, "creation must not touch stock")

	_, err = uc.SetStatus(context.Background(), o.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 6, f.products["p1"].Stock)

	// Setting COMPLETED again is a no-op for stock.
	_, err = uc.SetStatus(context.Background(), o.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 6, f.products["p1"].Stock)

	// Leaving COMPLETED restores it.
	_, err = uc.SetStatus(context.Background(), o.ID, model.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 10, f.products["p1"].Stock)

	// A transition that never touches COMPLETED moves nothing.
	_, err = uc.SetStatus(context.Background(), o.ID, model.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, 10, f.products["p1"].Stock)
}

func TestSetStatusVariantStock(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 10)
	seedVariant(f, "v1", "p1", "1kg", "22.50", 8)
	uc := newUC(f, true)

	o, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Dana", Email: "dana@example.com"},
		Items:    []dto.ItemInput{{ProductID: "p1", VariantID: strPtr("v1"), Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), o.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 5, f.variants["v1"].Stock, "variant stock moves")
	assert.Equal(t, 7, f.products["p1"].Stock, "parent product stock moves too")

	_, err = uc.SetStatus(context.Background(), o.ID, model.StatusRefused)
	require.NoError(t, err)
	assert.Equal(t, 8, f.variants["v1"].Stock)
	assert.Equal(t, 10, f.products["p1"].Stock)
}

func TestSetStatusConcurrentTransitionSeesCommittedStatus(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 10)
	uc := newUC(f, false)

	o, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Dana", Email: "dana@example.com"},
		Items:    []dto.ItemInput{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)

	// A competing request completes the order after this cancel has been
	// issued but before its transaction runs. The cancel must compute its
	// effect from COMPLETED and restore the stock, not leak it.
	f.beforeUpdateStatus = func() {
		_, err := uc.SetStatus(context.Background(), o.ID, model.StatusCompleted)
		require.NoError(t, err)
	}

	got, err := uc.SetStatus(context.Background(), o.ID, model.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, got.Status)
	assert.Equal(t, 10, f.products["p1"].Stock, "stock restored despite the interleaved completion")
}

func TestSetStatusInsufficientStock(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 2)
	uc := newUC(f, false)

	o, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Dana", Email: "dana@example.com"},
		Items:    []dto.ItemInput{{ProductID: "p1", Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), o.ID, model.StatusCompleted)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.As(err).Kind)
	assert.Equal(t, 2, f.products["p1"].Stock, "failed completion must not move stock")

	got, err := uc.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReceived, got.Status, "status unchanged on failure")
}

func TestSetStatusUnknown(t *testing.T) {
	f := newFakeRepo()
	uc := newUC(f, false)

	_, err := uc.SetStatus(context.Background(), "any", model.OrderStatus("SHIPPED"))
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.As(err).Kind)
}

func TestUpdateNotesPartial(t *testing.T) {
	f := newFakeRepo()
	seedProduct(f, "p1", "Arabica Beans", "12.99", 10)
	uc := newUC(f, false)

	note := "ring the bell"
	o, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		Customer: dto.CustomerInput{Name: "Dana", Email: "dana@example.com"},
		Items:    []dto.ItemInput{{ProductID: "p1", Quantity: 1}},
		Note:     &note,
	})
	require.NoError(t, err)

	adminNote := "regular customer"
	got, err := uc.UpdateNotes(context.Background(), o.ID, &dto.UpdateNotesInput{AdminNote: &adminNote})
	require.NoError(t, err)
	require.NotNil(t, got.AdminNote)
	assert.Equal(t, "regular customer", *got.AdminNote)
	require.NotNil(t, got.Note)
	assert.Equal(t, "ring the bell", *got.Note, "omitted field keeps its value")
}

func TestDeleteOrderNotFound(t *testing.T) {
	f := newFakeRepo()
	uc := newUC(f, false)

	err := uc.DeleteOrder(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.As(err).Kind)
}

func strPtr(s string) *string { return &s }
