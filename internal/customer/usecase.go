package customer

import (
	"context"

	"github.com/nortia/backoffice/internal/customer/dto"
	"github.com/nortia/backoffice/internal/model"
)

// Customers are created by public order submission; the admin surface only
// reads them.
type UseCase interface {
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error)
}
