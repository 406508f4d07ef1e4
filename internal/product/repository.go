package product

import (
	"context"

	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/product/dto"
)

type Repository interface {
	// Create persists the product together with its images, category links
	// and variants in one transaction.
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	// Update rewrites the product row and replaces its images, category
	// links and variants in one transaction.
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error

	// AttachRelations batch-loads images, categories, promotions and
	// variants onto the given products.
	AttachRelations(ctx context.Context, products []*model.Product) error

	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)
	CountOrderItemRefs(ctx context.Context, productID string) (int, error)

	FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error)
}
