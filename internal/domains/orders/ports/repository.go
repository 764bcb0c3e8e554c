package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// ListFilter narrows order listings. Zero values do not filter.
type ListFilter struct {
	Statuses []domain.Status
	DueFrom  *time.Time
	DueTo    *time.Time
}

type Repository interface {
	// Create inserts the order with its lines and assigns identifiers and the order date.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	// List returns matching orders ascending by id.
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, error)
}
