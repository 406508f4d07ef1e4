package product

import (
	"context"

	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	// DeleteProduct archives the product when order items still reference
	// it and hard-deletes it otherwise. Reports whether it was archived.
	DeleteProduct(ctx context.Context, id string) (archived bool, err error)
}
