package category

import (
	"context"

	"github.com/nortia/backoffice/internal/category/dto"
	"github.com/nortia/backoffice/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error

	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)
}
