package customer

import (
	"context"

	"github.com/nortia/backoffice/internal/customer/dto"
	"github.com/nortia/backoffice/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	FindAll(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error)
	LoadAddresses(ctx context.Context, customer *model.Customer) error
}
