package ports

import (
	"context"

	"github.com/Apurer/go-gin-backoffice/internal/domains/customers/domain"
)

// CustomerInput carries optional customer fields; nil fields are left untouched on update.
type CustomerInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// Service exposes customer management use cases to adapters.
type Service interface {
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, input CustomerInput) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}
