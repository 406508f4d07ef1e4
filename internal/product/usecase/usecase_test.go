package usecase

import (
	"context"
	"testing"

	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/nortia/backoffice/internal/product"
	"github.com/nortia/backoffice/internal/product/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	products  map[string]*model.Product
	itemRefs  map[string]int
	archived  []string
	deleted   []string
	usedSlugs map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:  map[string]*model.Product{},
		itemRefs:  map[string]int{},
		usedSlugs: map[string]bool{},
	}
}

func (f *fakeRepo) Create(ctx context.Context, p *model.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	f.usedSlugs[p.Slug] = true
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, p *model.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	f.usedSlugs[p.Slug] = true
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.products, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) Archive(ctx context.Context, id string) error {
	f.products[id].IsActive = false
	f.archived = append(f.archived, id)
	return nil
}

func (f *fakeRepo) AttachRelations(ctx context.Context, products []*model.Product) error {
	return nil
}

func (f *fakeRepo) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	return !f.usedSlugs[slug], nil
}

func (f *fakeRepo) CountOrderItemRefs(ctx context.Context, productID string) (int, error) {
	return f.itemRefs[productID], nil
}

func (f *fakeRepo) FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error) {
	return nil, nil
}

func newUC(f *fakeRepo) product.UseCase {
	return NewProductUseCase(f, nil, nil, true, zap.NewNop())
}

func seed(f *fakeRepo, id, name string) {
	f.products[id] = &model.Product{
		BaseModel: model.BaseModel{ID: id},
		Name:      name,
		Price:     decimal.RequireFromString("9.99"),
		IsActive:  true,
	}
}

func TestDeleteProductArchivesWhenReferenced(t *testing.T) {
	f := newFakeRepo()
	seed(f, "p1", "Arabica Beans")
	f.itemRefs["p1"] = 3
	uc := newUC(f)

	archived, err := uc.DeleteProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, archived)
	assert.Equal(t, []string{"p1"}, f.archived)
	assert.Empty(t, f.deleted)
	assert.False(t, f.products["p1"].IsActive, "archived product stays, inactive")
}

func TestDeleteProductRemovesWhenUnreferenced(t *testing.T) {
	f := newFakeRepo()
	seed(f, "p1", "Arabica Beans")
	uc := newUC(f)

	archived, err := uc.DeleteProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, archived)
	assert.Equal(t, []string{"p1"}, f.deleted)
	assert.Empty(t, f.archived)
	assert.NotContains(t, f.products, "p1")
}

func TestDeleteProductNotFound(t *testing.T) {
	f := newFakeRepo()
	uc := newUC(f)

	_, err := uc.DeleteProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.As(err).Kind)
}

func TestCreateProductSlugConflict(t *testing.T) {
	f := newFakeRepo()
	f.usedSlugs["arabica-beans"] = true
	uc := newUC(f)

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name:  "Arabica Beans",
		Price: decimal.RequireFromString("12.99"),
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.As(err).Kind)
}

func TestCreateProductDefaultsPriceHidden(t *testing.T) {
	f := newFakeRepo()
	uc := newUC(f)

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name:  "Arabica Beans",
		Price: decimal.RequireFromString("12.99"),
	})
	require.NoError(t, err)
	assert.False(t, p.VisiblePrice)
	assert.True(t, p.VisibleDescription)
	assert.True(t, p.IsActive)
}

func TestUpdateProductKeepsVariantIdentity(t *testing.T) {
	f := newFakeRepo()
	seed(f, "p1", "Arabica Beans")
	f.products["p1"].Variants = []model.ProductVariant{
		{BaseModel: model.BaseModel{ID: "v1"}, ProductID: "p1", Name: "1kg", Price: decimal.RequireFromString("22.50")},
	}
	uc := newUC(f)

	// An update that never mentions variants must carry the existing
	// variant rows through with their ids intact, so order items keep
	// pointing at them.
	name := "Arabica Beans Premium"
	p, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{ID: "p1", Name: &name})
	require.NoError(t, err)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "v1", p.Variants[0].ID)
}

func TestUpdateProductVariantInputKeepsIDs(t *testing.T) {
	f := newFakeRepo()
	seed(f, "p1", "Arabica Beans")
	f.products["p1"].Variants = []model.ProductVariant{
		{BaseModel: model.BaseModel{ID: "v1"}, ProductID: "p1", Name: "1kg"},
	}
	uc := newUC(f)

	id := "v1"
	p, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID: "p1",
		Variants: []dto.VariantInput{
			{ID: &id, Name: "1kg", Price: decimal.RequireFromString("24.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "v1", p.Variants[0].ID, "resubmitted variant keeps its id")
	assert.True(t, p.Variants[0].Price.Equal(decimal.RequireFromString("24.00")))
}

func TestVariantsDroppedWhenDisabled(t *testing.T) {
	f := newFakeRepo()
	uc := NewProductUseCase(f, nil, nil, false, zap.NewNop())

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name:  "Arabica Beans",
		Price: decimal.RequireFromString("12.99"),
		Variants: []dto.VariantInput{
			{Name: "1kg", Price: decimal.RequireFromString("22.50")},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, p.Variants, "variant payload ignored when the flag is off")
}
