package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/nortia/backoffice/internal/pkg/cache"
	"github.com/nortia/backoffice/internal/pkg/search"
	"github.com/nortia/backoffice/internal/pkg/slug"
	"github.com/nortia/backoffice/internal/product"
	"github.com/nortia/backoffice/internal/product/dto"
	"go.uber.org/zap"
)

const productIndex = "products"

type productUseCase struct {
	repo            product.Repository
	cache           *cache.RedisClient
	es              *search.Client
	variantsEnabled bool
	logger          *zap.Logger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, variantsEnabled bool, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:            repo,
		cache:           cache,
		es:              es,
		variantsEnabled: variantsEnabled,
		logger:          log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	s := slug.Make(input.Name)
	unique, err := uc.repo.IsSlugUnique(ctx, s, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !unique {
		return nil, apperror.Conflict("product slug already exists")
	}

	now := time.Now()
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        input.Name,
		Slug:        s,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		IsActive:    isActive,
		SortOrder:   input.SortOrder,
		PackageSize: input.PackageSize,
		PDFURL:      input.PDFURL,

		// Price is hidden by default, everything else shown.
		VisiblePrice:       false,
		VisibleDescription: true,
		VisibleImages:      true,
		VisiblePackageSize: true,
		VisiblePDF:         true,
	}
	applyVisibility(p, input.Visibility)

	for _, img := range input.Images {
		p.Images = append(p.Images, model.ProductImage{
			ID:        uuid.New().String(),
			URL:       img.URL,
			SortOrder: img.SortOrder,
		})
	}
	for _, catID := range input.CategoryIDs {
		p.Categories = append(p.Categories, model.Category{BaseModel: model.BaseModel{ID: catID}})
	}
	if uc.variantsEnabled {
		p.Variants = buildVariants(input.Variants, now)
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, apperror.Internal(err)
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return uc.GetProduct(ctx, p.ID)
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if p == nil {
		return nil, apperror.NotFound("product not found")
	}
	if err := uc.repo.AttachRelations(ctx, []*model.Product{p}); err != nil {
		return nil, apperror.Internal(err)
	}
	if !uc.variantsEnabled {
		p.Variants = nil
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, keyErr := uc.cacheKey(filters)
	if keyErr == nil && uc.cache != nil {
		if val, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var cached struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	products, count, err := uc.searchOrQuery(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	refs := make([]*model.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	if err := uc.repo.AttachRelations(ctx, refs); err != nil {
		return nil, 0, apperror.Internal(err)
	}
	if !uc.variantsEnabled {
		for i := range products {
			products[i].Variants = nil
		}
	}

	if keyErr == nil && uc.cache != nil {
		payload := struct {
			Products []model.Product
			Count    int
		}{products, count}
		if data, err := json.Marshal(payload); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

// searchOrQuery prefers Elasticsearch for free-text queries and falls back
// to the database on any failure.
func (uc *productUseCase) searchOrQuery(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters.SearchQuery == "" || uc.es == nil {
		return uc.repo.FindAll(ctx, filters)
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "description"},
			},
		},
		"from": (filters.Page - 1) * filters.PageSize,
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, productIndex, q)
	if err != nil {
		uc.logger.Error("product search failed, falling back to DB", zap.Error(err))
		return uc.repo.FindAll(ctx, filters)
	}

	var products []model.Product
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			if !filters.IncludeInactive && !p.IsActive {
				continue
			}
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if p == nil {
		return nil, apperror.NotFound("product not found")
	}
	if err := uc.repo.AttachRelations(ctx, []*model.Product{p}); err != nil {
		return nil, apperror.Internal(err)
	}

	if input.Name != nil && *input.Name != p.Name {
		s := slug.Make(*input.Name)
		unique, err := uc.repo.IsSlugUnique(ctx, s, p.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if !unique {
			return nil, apperror.Conflict("product slug already exists")
		}
		p.Name = *input.Name
		p.Slug = s
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		p.SortOrder = *input.SortOrder
	}
	if input.PackageSize != nil {
		p.PackageSize = input.PackageSize
	}
	if input.PDFURL != nil {
		p.PDFURL = input.PDFURL
	}
	applyVisibility(p, input.Visibility)

	if input.Images != nil {
		p.Images = nil
		for _, img := range input.Images {
			p.Images = append(p.Images, model.ProductImage{
				ID:        uuid.New().String(),
				URL:       img.URL,
				SortOrder: img.SortOrder,
			})
		}
	}
	if input.CategoryIDs != nil {
		p.Categories = nil
		for _, catID := range input.CategoryIDs {
			p.Categories = append(p.Categories, model.Category{BaseModel: model.BaseModel{ID: catID}})
		}
	}
	if uc.variantsEnabled {
		if input.Variants != nil {
			p.Variants = buildVariants(input.Variants, time.Now())
		}
	} else {
		p.Variants = nil
	}

	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, apperror.Internal(err)
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return uc.GetProduct(ctx, p.ID)
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) (bool, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if p == nil {
		return false, apperror.NotFound("product not found")
	}

	refs, err := uc.repo.CountOrderItemRefs(ctx, id)
	if err != nil {
		return false, apperror.Internal(err)
	}

	archived := refs > 0
	if archived {
		// Referenced by order history: archive instead of delete.
		if err := uc.repo.Archive(ctx, id); err != nil {
			return false, apperror.Internal(err)
		}
	} else {
		if err := uc.repo.Delete(ctx, id); err != nil {
			return false, apperror.Internal(err)
		}
		if uc.es != nil {
			go func() {
				if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
					uc.logger.Error("failed to delete product from index", zap.Error(err))
				}
			}()
		}
	}

	go uc.invalidateListCache(context.Background())
	uc.logger.Info("product deleted", zap.String("product_id", id), zap.Bool("archived", archived))
	return archived, nil
}

func applyVisibility(p *model.Product, v *dto.VisibilityInput) {
	if v == nil {
		return
	}
	if v.Price != nil {
		p.VisiblePrice = *v.Price
	}
	if v.Description != nil {
		p.VisibleDescription = *v.Description
	}
	if v.Images != nil {
		p.VisibleImages = *v.Images
	}
	if v.PackageSize != nil {
		p.VisiblePackageSize = *v.PackageSize
	}
	if v.PDF != nil {
		p.VisiblePDF = *v.PDF
	}
}

func buildVariants(inputs []dto.VariantInput, now time.Time) []model.ProductVariant {
	variants := make([]model.ProductVariant, 0, len(inputs))
	for _, in := range inputs {
		id := uuid.New().String()
		if in.ID != nil && *in.ID != "" {
			id = *in.ID
		}
		isActive := true
		if in.IsActive != nil {
			isActive = *in.IsActive
		}
		variants = append(variants, model.ProductVariant{
			BaseModel:  model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
			Name:       in.Name,
			SKU:        in.SKU,
			Price:      in.Price,
			Stock:      in.Stock,
			SortOrder:  in.SortOrder,
			IsActive:   isActive,
			CoverImage: in.CoverImage,
		})
	}
	return variants
}

func (uc *productUseCase) cacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteByPattern(ctx, "products:list:*"); err != nil {
		uc.logger.Error("failed to invalidate product list cache", zap.Error(err))
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"description": { "type": "text" },
				"slug": { "type": "keyword" },
				"price": { "type": "double" },
				"is_active": { "type": "boolean" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}
