package application

import (
	"context"

	"github.com/Apurer/go-gin-backoffice/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/customers/ports"
)

// Service orchestrates customer management use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) CreateCustomer(ctx context.Context, input ports.CustomerInput) (*domain.Customer, error) {
	name := ""
	if input.Name != nil {
		name = *input.Name
	}
	customer, err := domain.NewCustomer(name)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyInput(customer, input); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, customer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, input ports.CustomerInput) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyInput(customer, input); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, customer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteCustomer removes the customer; orders keep existing with no customer attached.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func applyInput(target *domain.Customer, input ports.CustomerInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	email, phone, address := target.Email, target.Phone, target.Address
	if input.Email != nil {
		email = *input.Email
	}
	if input.Phone != nil {
		phone = *input.Phone
	}
	if input.Address != nil {
		address = *input.Address
	}
	return target.UpdateContacts(email, phone, address)
}

var _ ports.Service = (*Service)(nil)
