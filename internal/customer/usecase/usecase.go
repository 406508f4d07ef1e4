package usecase

import (
	"context"

	"github.com/nortia/backoffice/internal/customer"
	"github.com/nortia/backoffice/internal/customer/dto"
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/pkg/apperror"
	"go.uber.org/zap"
)

type customerUseCase struct {
	repo   customer.Repository
	logger *zap.Logger
}

func NewCustomerUseCase(repo customer.Repository, log *zap.Logger) customer.UseCase {
	return &customerUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *customerUseCase) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c == nil {
		return nil, apperror.NotFound("customer not found")
	}
	if err := uc.repo.LoadAddresses(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}
	return c, nil
}

func (uc *customerUseCase) ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error) {
	customers, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return customers, count, nil
}
