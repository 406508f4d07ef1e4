package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nortia/backoffice/internal/category"
	"github.com/nortia/backoffice/internal/category/dto"
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"github.com/nortia/backoffice/internal/pkg/slug"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger *zap.Logger
}

func NewCategoryUseCase(repo category.Repository, log *zap.Logger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.ParentID != nil && *input.ParentID != "" {
		parent, err := uc.repo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if parent == nil {
			return nil, apperror.NotFound("parent category not found")
		}
	}

	s := slug.Make(input.Name)
	unique, err := uc.repo.IsSlugUnique(ctx, s, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !unique {
		return nil, apperror.Conflict("category slug already exists")
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ParentID: input.ParentID,
		Name:     input.Name,
		Slug:     s,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, apperror.Internal(err)
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if cat == nil {
		return nil, apperror.NotFound("category not found")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	categories, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return categories, count, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if cat == nil {
		return nil, apperror.NotFound("category not found")
	}

	// Only one level of nesting is supported; reject direct self-reference.
	if input.ParentID != nil && *input.ParentID == cat.ID {
		return nil, apperror.Validation("category cannot be its own parent")
	}

	if input.Name != cat.Name {
		s := slug.Make(input.Name)
		unique, err := uc.repo.IsSlugUnique(ctx, s, cat.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if !unique {
			return nil, apperror.Conflict("category slug already exists")
		}
		cat.Name = input.Name
		cat.Slug = s
	}

	cat.ParentID = input.ParentID
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, apperror.Internal(err)
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if cat == nil {
		return apperror.NotFound("category not found")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	uc.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}
